package api

import (
	"time"

	"github.com/rpupo63/folio-backend/admin"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/services"
	"github.com/rpupo63/folio-backend/storage"
)

// handlerDeps carries what the handlers need besides the database
type handlerDeps struct {
	startupTime time.Time
	site        admin.Site
	signer      tokenSigner
	mediaStore  storage.MediaStore
	notifier    services.Notifier
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps handlerDeps) *routeHandlers {
	return &routeHandlers{
		siteHandler:    newSiteHandler(database, deps.startupTime),
		blogHandler:    newBlogHandler(database),
		contactHandler: newContactHandler(database.ContactMessageRepo(), newFlashStore(), deps.notifier),
		authHandler:    newAuthHandler(database.UserRepo(), deps.signer),
		adminHandler:   newAdminHandler(database, deps.site),
		mediaHandler:   newMediaHandler(deps.mediaStore),
	}
}
