package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/folio-backend/admin"
	"github.com/rpupo63/folio-backend/config"
	"github.com/rpupo63/folio-backend/database"
	"github.com/rpupo63/folio-backend/services"
	"github.com/rpupo63/folio-backend/storage"
	"github.com/rs/zerolog/log"
)

const defaultTokenTTL = 24 * time.Hour

type Server struct {
	*http.Server
	startupTime time.Time
}

// ServerOption plugs an external collaborator into the router
type ServerOption func(*router)

// WithMediaStore sets where admin uploads go
func WithMediaStore(store storage.MediaStore) ServerOption {
	return func(r *router) {
		r.mediaStore = store
	}
}

// WithNotifier sets who hears about new contact messages
func WithNotifier(notifier services.Notifier) ServerOption {
	return func(r *router) {
		r.notifier = notifier
	}
}

func NewServer(database database.Database, c config.Config, opts ...ServerOption) (Server, error) {
	if config.GetString(c, "JWT_SECRET", "") == "" {
		return Server{}, errors.New("JWT_SECRET must be set")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	routerOpts := append([]ServerOption{withConfig(c), withStartupTime(startupTime)}, opts...)
	router := newRouter(database, routerOpts...)

	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadTimeout:       config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 60),
		ReadHeaderTimeout: config.GetSeconds(c, "READ_HEADER_TIMEOUT_SECONDS", 10),
		WriteTimeout:      config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 60),
		IdleTimeout:       config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
	mediaStore  storage.MediaStore
	notifier    services.Notifier
}

func withConfig(c config.Config) ServerOption {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) ServerOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...ServerOption) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	signer := newTokenSigner(
		config.GetString(router.config, "JWT_SECRET", ""),
		time.Duration(config.GetInt(router.config, "JWT_TTL_HOURS", int(defaultTokenTTL/time.Hour)))*time.Hour,
	)

	handlers := initializeHandlers(database, handlerDeps{
		startupTime: router.startupTime,
		site:        admin.NewSite(router.config),
		signer:      signer,
		mediaStore:  router.mediaStore,
		notifier:    router.notifier,
	})

	authMiddleware := newAuthMiddleware(signer)

	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupSiteRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)
	setupMediaRoutes(chiRouter, router.mediaStore)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
