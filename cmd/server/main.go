package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/app"
	"github.com/slovko/tutor-admin/internal/config"
	transport "github.com/slovko/tutor-admin/internal/http"
	"github.com/slovko/tutor-admin/internal/identity"
	"github.com/slovko/tutor-admin/internal/mailer"
	"github.com/slovko/tutor-admin/internal/repository"
	"github.com/slovko/tutor-admin/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutor admin server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database migrated", zap.Int64("version", version))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	tutorRepo := repository.NewTutorRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	invitationRepo := repository.NewInvitationRepository(pool)
	cancellationRepo := repository.NewCancellationRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	clubRepo := repository.NewClubEventRepository(pool)

	smtp, err := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		BaseURL:  cfg.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create mailer", zap.Error(err))
	}

	identityClient := identity.NewClient(cfg.IdentityURL, nil)

	tutorService := service.NewTutorService(tutorRepo, identityClient, logger)
	scheduleService := service.NewScheduleService(templateRepo, invitationRepo, cancellationRepo, sessionRepo, smtp, logger)
	invitationService := service.NewInvitationService(invitationRepo, logger)
	clubService := service.NewClubService(clubRepo, identityClient, logger)
	reportService := service.NewReportService(sessionRepo, logger)

	scheduler := app.NewScheduler(cancellationRepo, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := transport.NewServer(tutorService, scheduleService, invitationService, clubService, reportService, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
