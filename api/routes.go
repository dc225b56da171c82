package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/folio-backend/admin"
	"github.com/rpupo63/folio-backend/storage"
)

// setupSiteRoutes sets up the public pages
func setupSiteRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/healthz", handlers.siteHandler.healthz())

		r.Get("/", handlers.siteHandler.home())
		r.Get("/about/", handlers.siteHandler.about())
		r.Get("/portfolio/", handlers.siteHandler.portfolio())
		r.Get("/project/{projectID}/", handlers.siteHandler.projectDetail())

		r.Get("/contact/", handlers.contactHandler.contactForm())
		r.Post("/contact/", handlers.contactHandler.submitContact())

		r.Get("/blog/", handlers.blogHandler.listPosts())
		r.Get("/blog/category/{slug}/", handlers.blogHandler.listByCategory())
		r.Get("/blog/tag/{slug}/", handlers.blogHandler.listByTag())
		r.Get("/blog/{slug}/", handlers.blogHandler.getPost())
	})
}

// setupAdminRoutes sets up the admin API. Everything but login needs a token.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/login", handlers.authHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/", handlers.adminHandler.index())
			r.Post("/media", handlers.mediaHandler.upload())

			for _, res := range handlers.adminHandler.resources {
				base := "/" + res.name()
				r.Get(base, res.list())
				r.Post(base, res.create())
				r.Get(base+"/{id}", res.get())
				r.Put(base+"/{id}", res.update())
				r.Delete(base+"/{id}", res.remove())

				if _, ok := admin.Actions[res.name()]; ok {
					r.Post(base+"/actions/{action}", handlers.adminHandler.applyAction(res.name()))
				}
			}
		})
	})
}

// setupMediaRoutes serves uploads kept on local disk. Remote stores hand out
// their own URLs.
func setupMediaRoutes(r chi.Router, store storage.MediaStore) {
	local, ok := store.(*storage.LocalStore)
	if !ok || !strings.HasPrefix(local.BaseURL(), "/") {
		return
	}

	prefix := strings.TrimSuffix(local.BaseURL(), "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.Root()))))
}
