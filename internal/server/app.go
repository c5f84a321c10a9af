// Package server wires the paydesk application together: configuration,
// database and migrations, media and mail backends, services, and the HTTP
// and gRPC servers with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/wealthx/paydesk/internal/logging"
	"github.com/wealthx/paydesk/internal/server/auth"
	"github.com/wealthx/paydesk/internal/server/config"
	"github.com/wealthx/paydesk/internal/server/httpapi"
	"github.com/wealthx/paydesk/internal/server/mailer"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/repositories/repomanager"
	"github.com/wealthx/paydesk/internal/server/services"

	gs "github.com/wealthx/paydesk/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	tokens, err := auth.NewTokenManager(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	host, err := media.NewS3Host(ctx, media.S3Config{
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		BaseEndpoint:  c.S3BaseEndpoint,
		PublicBaseURL: c.S3PublicBaseURL,
		MaxBytes:      c.MaxUploadBytes,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("media host: %w", err)
	}

	mail, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:      c.SMTPHost,
		Port:      c.SMTPPort,
		Username:  c.SMTPUser,
		Password:  c.SMTPPassword,
		From:      c.MailFrom,
		Recipient: c.ContactRecipient,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mailer: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Users:          services.NewUserService(db, rm, auth.NewPasswordHasher(c.BcryptCost), tokens, host),
		Payments:       services.NewPaymentService(db, rm, host),
		QR:             services.NewQRService(db, rm, host),
		Contact:        services.NewContactService(mail),
		Tokens:         tokens,
		Logger:         logger,
		AllowedOrigins: c.AllowedOrigins,
		MaxUploadBytes: c.MaxUploadBytes,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewServer(c.EndpointAddrHTTP, router, logger),
		grpc:   gs.NewHealthServer(c.EndpointAddrGRPC, logger),
	}, nil
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

// runServer runs one server; a failure cancels the whole app.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until a shutdown signal arrives or either server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.http.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.grpc.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
