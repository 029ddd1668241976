// Package server composes the long-lived dependencies of the process and
// owns the HTTP server lifecycle.
//
// Depending on configuration it opens a Firebase app (shared by Firestore
// and Firebase Auth), a Firestore client and a PostgreSQL pool. Every
// handle is created once at startup and shared read-only by requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/deppfellow/dispenser-api/internal/config"
	"github.com/deppfellow/dispenser-api/internal/database"
	loggerPkg "github.com/deppfellow/dispenser-api/internal/logger"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// Firebase is set when the Firestore store or Firebase Auth is configured.
	Firebase *firebase.App

	// Firestore is set for the firestore store driver.
	Firestore *firestore.Client

	// DB is set for the postgres store driver.
	DB *database.Database

	httpServer *http.Server
}

// New opens the store and identity handles the configuration asks for.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.NeedsFirebase() {
		app, err := newFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firebase: %w", err)
		}
		s.Firebase = app
	}

	switch cfg.Store.Driver {
	case config.StoreDriverFirestore:
		client, err := s.Firebase.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firestore: %w", err)
		}
		s.Firestore = client
		logger.Info().Str("project_id", cfg.Firebase.ProjectID).Msg("connected to firestore")

	case config.StoreDriverPostgres:
		db, err := database.New(ctx, cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
	}

	return s, nil
}

func newFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	return firebase.NewApp(ctx, fbConfig, opts...)
}

// SetupHTTPServer configures the net/http server around handler.
// Config timeouts are in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Store.Driver).
		Str("auth", s.Config.Auth.Provider).
		Msg("starting server")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests, then closes the store handles.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Firestore != nil {
		if err := s.Firestore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close firestore client: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errs...)
}
