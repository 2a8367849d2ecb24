// Package server initializes and runs the application backend.
// It opens the database, applies migrations, assembles the submission
// service with its spam protections and starts the HTTP API with
// graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nichedigital/leaddesk/internal/logging"
	"github.com/nichedigital/leaddesk/internal/server/config"
	"github.com/nichedigital/leaddesk/internal/server/httpapi"
	"github.com/nichedigital/leaddesk/internal/server/shared/db"
	"github.com/nichedigital/leaddesk/internal/server/spam"
	"github.com/nichedigital/leaddesk/internal/server/submissions"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager *db.PostgresRepositoryManager
	service *submissions.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	svc := submissions.NewService(m.Submissions(), spam.NewDetector(), spam.NewRateLimiter(), logger)

	return &App{config: c, logger: logger, manager: m, service: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	creds := httpapi.AdminCredentials{
		Username:     app.config.AdminUsername,
		Password:     app.config.AdminPassword,
		PasswordHash: app.config.AdminPasswordHash,
	}

	engine := httpapi.BuildRouter(httpapi.NewHandlers(app.service, app.logger), creds, app.logger)
	srv := httpapi.NewServer(app.config.HTTPAddr, engine, app.logger, app.config.ShutdownTimeout)

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
