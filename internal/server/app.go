// Package server initializes and runs the Sentivox API server. It wires the
// repositories, services, and HTTP surface together, and handles graceful
// shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sentivox/sentivox/internal/logging"
	"github.com/sentivox/sentivox/internal/server/config"
	"github.com/sentivox/sentivox/internal/server/httpapi"
	"github.com/sentivox/sentivox/internal/server/mailer"
	"github.com/sentivox/sentivox/internal/server/repositories/repomanager"
	"github.com/sentivox/sentivox/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// newMailer picks SMTP when credentials are configured, otherwise a no-op.
func newMailer(cfg *config.Config) mailer.Mailer {
	if cfg.SMTPUser != "" {
		return mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	}
	return mailer.Noop{}
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler *httpapi.Handler
	repos   repomanager.RepositoryManager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := services.NewUserService(rm.Users(), newMailer(cfg), cfg)
	conversationService := services.NewConversationService(rm.Conversations())
	memoryService := services.NewMemoryService(rm.Memories())

	handler := httpapi.NewHandler(cfg, logger,
		userService, conversationService, memoryService, rm.Conn())

	return &App{config: cfg, logger: logger, handler: handler, repos: rm}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP endpoint and blocks until the context is cancelled or
// the listener fails. Outstanding requests get shutdownTimeout to finish.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	e := app.handler.NewEcho()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server",
			"addr", app.config.EndpointAddr, "env", app.config.Environment)
		if err := e.Start(app.config.EndpointAddr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "server shutdown error", "error", err.Error())
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
	}

	return nil
}
