package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/service"
)

// application holds the shared dependencies of the HTTP server.
type application struct {
	config *config.Config
	logger *slog.Logger
	notes  service.NoteService
}

// newApplication creates the server application from assembled components.
func newApplication(cfg *config.Config, logger *slog.Logger, core *app.App) *application {
	return &application{
		config: cfg,
		logger: logger,
		notes:  core.Notes,
	}
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
