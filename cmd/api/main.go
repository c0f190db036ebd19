package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"dfseducation/internal/config"
	"dfseducation/internal/database"
	"dfseducation/internal/database/migration"
	handlers "dfseducation/internal/http/handler"
	"dfseducation/internal/http/middleware"
	"dfseducation/internal/mailer"
	"dfseducation/internal/otel"
	"dfseducation/internal/repository/sqlrepo"
	"dfseducation/internal/restart"
	"dfseducation/internal/service"
	"dfseducation/internal/storage"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Engine); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var store storage.Storage
	switch cfg.Files.MediaStorage {
	case config.MediaStorageS3:
		store, err = storage.NewMinIO(cfg.MinIO)
	default:
		store, err = storage.NewLocal(cfg.Files.MediaRoot)
	}
	if err != nil {
		log.Fatalf("failed to initialize media storage: %v", err)
	}

	mail := mailer.New(cfg.Email, os.Stdout)

	// Repositories.
	userRepo := sqlrepo.NewUserSQL(db)
	sessionRepo := sqlrepo.NewSessionSQL(db)
	notificationRepo := sqlrepo.NewNotificationSQL(db)
	scholarshipRepo := sqlrepo.NewScholarshipSQL(db)
	applicationRepo := sqlrepo.NewApplicationSQL(db)
	paymentRepo := sqlrepo.NewPaymentSQL(db)
	walletRepo := sqlrepo.NewWalletSQL(db)
	officeRepo := sqlrepo.NewOfficeSQL(db)
	settingsRepo := sqlrepo.NewSettingsSQL(db)

	// Services.
	notify := service.NewNotifier(notificationRepo, userRepo, mail)
	auth := service.NewAuthService(userRepo, sessionRepo, cfg.SecretKey, time.Duration(cfg.Session.TTLHours)*time.Hour)
	scholarships := service.NewScholarshipService(scholarshipRepo)
	applications := service.NewApplicationService(applicationRepo, scholarshipRepo, userRepo, paymentRepo, walletRepo, officeRepo, store, notify)
	payments := service.NewPaymentService(paymentRepo, applications, applicationRepo, scholarshipRepo, store, notify)
	wallets := service.NewWalletService(walletRepo, notify)
	offices := service.NewOfficeService(officeRepo)
	settings := service.NewSettingsService(settingsRepo, store)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    16 << 20,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.Security(cfg))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Collected assets and, for the local backend, uploaded media.
	app.Static("/static", cfg.Files.StaticRoot)
	if cfg.Files.MediaStorage == config.MediaStorageLocal {
		app.Static("/media", cfg.Files.MediaRoot)
	}

	loginLimiter := middleware.NewRateLimiter(1, 10)
	handlers.RegisterRoutes(app, db, handlers.Services{
		Auth:         auth,
		Scholarships: scholarships,
		Applications: applications,
		Payments:     payments,
		Wallets:      wallets,
		Offices:      offices,
		Settings:     settings,
		Notify:       notify,
	}, loginLimiter.Handler())

	// Expired sessions are cleared on a schedule inside the process.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Session.CleanupCron, func() {
		n, err := auth.ClearExpiredSessions(context.Background())
		if err != nil {
			log.Printf("session cleanup failed: %v", err)
			return
		}
		log.Printf("session cleanup removed %d sessions", n)
	}); err != nil {
		log.Fatalf("invalid SESSION_CLEANUP_CRON: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Touching the restart sentinel triggers a graceful shutdown; the
	// process supervisor brings up the new build.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	watcher, err := restart.NewWatcher(cfg.RestartSentinel, func() {
		quit <- syscall.SIGTERM
	})
	if err != nil {
		log.Fatalf("failed to create restart watcher: %v", err)
	}
	if err := watcher.Start(ctx); err != nil {
		log.Fatalf("failed to watch restart sentinel: %v", err)
	}
	defer watcher.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
