package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/cache"
	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	"learnhub/payment"
	"learnhub/routers"
	"learnhub/services/auth"
	"learnhub/services/catalog"
	"learnhub/services/certificate"
	"learnhub/services/dashboard"
	"learnhub/services/enrollment"
	"learnhub/services/progress"
	"learnhub/storage"
	"learnhub/utils"

	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.ConnectDb(log)
	if err != nil {
		log.Fatal("Database connection failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogCache := newCatalogCache(cfg, log)
	media := newMediaStore(ctx, cfg, log)
	mailer := newMailer(cfg, log)

	gateway, err := payment.NewFromConfig(cfg, log)
	if err != nil {
		log.Fatal("Payment gateway configuration invalid", "error", err)
	}

	policy, err := progress.ParsePolicy(cfg.CompletionPolicy)
	if err != nil {
		log.Fatal("Invalid COMPLETION_POLICY", "error", err)
	}

	authService := auth.NewService(db, auth.Options{
		JWTSecret:     cfg.JWTKey,
		TokenTTL:      cfg.JWTExpiresIn,
		SaltRound:     cfg.SaltRound,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		ClientURL:     cfg.ClientURL,
		DevMode:       cfg.IsDevelopment(),
	}, mailer, log)

	scheduler, err := utils.InitializeResetTokenScheduler(cfg.ResetTokenCleanupCron, authService.PurgeExpiredResetTokens, log)
	if err != nil {
		log.Fatal("Failed to start reset token scheduler", "error", err)
	}

	app := routers.NewApp(routers.Services{
		Auth:         authService,
		Catalog:      catalog.NewService(db, catalogCache, log),
		Enrollments:  enrollment.NewService(db, gateway, cfg.PaymentCurrency, mailer, log),
		Progress:     progress.NewService(db, policy, media, log),
		Certificates: certificate.NewService(db, mailer, log),
		Dashboard:    dashboard.NewService(db),
		Ping:         func(ctx context.Context) error { return database.Ping(ctx, db) },
	}, routers.DefaultOptions(cfg.ClientURL))

	go func() {
		log.Info("Server is running", "port", cfg.Port, "env", cfg.AppEnv, "gateway", gateway.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	closeAll(log, db, catalogCache, media)
}

func newCatalogCache(cfg *config.Config, log *logger.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.Noop{}
	}
	r, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.CatalogCacheTTL)
	if err != nil {
		log.Warn("Redis unavailable, catalog cache disabled", "addr", cfg.RedisAddr, "error", err)
		return cache.Noop{}
	}
	log.Info("Catalog cache enabled", "addr", cfg.RedisAddr)
	return r
}

func newMediaStore(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.Store {
	if cfg.GCSBucket == "" {
		return storage.Passthrough{}
	}
	gcs, err := storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.VideoURLTTL)
	if err != nil {
		log.Fatal("Failed to initialize video storage", "bucket", cfg.GCSBucket, "error", err)
	}
	log.Info("Video URLs signed through GCS", "bucket", cfg.GCSBucket)
	return gcs
}

func newMailer(cfg *config.Config, log *logger.Logger) utils.Mailer {
	if cfg.SendGridAPIKey == "" {
		log.Warn("SENDGRID_API_KEY not set, emails will only be logged")
		return utils.NewLogMailer(log)
	}
	return utils.NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailSenderName, cfg.EmailSender, log)
}

type closer interface{ Close() error }

func closeAll(log *logger.Logger, db *gorm.DB, resources ...any) {
	for _, r := range resources {
		if c, ok := r.(closer); ok {
			if err := c.Close(); err != nil {
				log.Warn("Close failed", "error", err)
			}
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
