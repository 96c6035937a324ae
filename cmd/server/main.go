package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sports-portal/internal/api"
	"sports-portal/internal/config"
	"sports-portal/internal/events"
	"sports-portal/internal/jwt"
	"sports-portal/internal/preview"
	"sports-portal/internal/repository"
	"sports-portal/internal/service"
	"sports-portal/internal/storage"
	"sports-portal/internal/tracing"
	_ "sports-portal/migrations"
)

const serviceName = "sports-portal"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	api.SetupGlobalHandler(serviceName, cfg.LogLevel)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	shutdownTracer, err := tracing.InitTracerProvider(context.Background(), tracing.Options{
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		Endpoint:    cfg.OtelEndpoint,
		SampleRatio: cfg.OtelSampleRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	db := connectDB(cfg)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer eventPublisher.Close()
	log.Println("Successfully connected to NATS.")

	store := newStore(cfg)
	pipeline := preview.NewPipeline(store, preview.NewPopplerRasterizer(cfg.PopplerPath, cfg.PreviewTimeout), slog.Default())
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewPostgresUserRepository(db)
	playerRepo := repository.NewPostgresPlayerRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)
	sportRepo := repository.NewPostgresSportRepository(db)
	certRepo := repository.NewPostgresCertificateRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)
	deviceRepo := repository.NewPostgresDeviceTokenRepository(db)
	feedbackRepo := repository.NewPostgresFeedbackRepository(db)

	registrationService := service.NewRegistrationService(userRepo, sportRepo, eventPublisher)
	authService := service.NewAuthService(userRepo, tokenRepo, tokens)
	approvalService := service.NewApprovalService(userRepo, eventPublisher)
	profileService := service.NewProfileService(userRepo, playerRepo, deviceRepo, store)
	dashboardService := service.NewDashboardService(playerRepo, certRepo, notificationRepo)
	certificateService := service.NewCertificateService(certRepo, playerRepo, store, pipeline)
	sportService := service.NewSportService(sportRepo, playerRepo)
	notificationService := service.NewNotificationService(notificationRepo, eventPublisher)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	app := fiber.New(fiber.Config{AppName: serviceName})
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())
	app.Use(api.RateLimiter(cfg.RateLimitMax, cfg.RateLimitExpiration))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if cfg.StorageDriver != "s3" {
		app.Static(cfg.MediaBaseURL, cfg.MediaRoot)
	}

	api.SetupRoutes(app, api.Handlers{
		Auth:   api.NewAuthHandler(registrationService, authService),
		Player: api.NewPlayerHandler(profileService, authService, dashboardService, certificateService, store),
		Admin:  api.NewAdminHandler(approvalService, certificateService, sportService, notificationService),
		Public: api.NewPublicHandler(sportService, feedbackService, notificationService),
	}, tokens, cfg.InternalSharedSecret)

	log.Printf("Listening %s on port %s", serviceName, cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func newStore(cfg *config.Config) storage.Store {
	if cfg.StorageDriver != "s3" {
		log.Printf("Serving media from %s", cfg.MediaRoot)
		return storage.NewLocalStore(cfg.MediaRoot, cfg.MediaBaseURL)
	}

	store, err := storage.NewS3Store(context.Background(), storage.S3Options{
		Endpoint:     cfg.S3Endpoint,
		Region:       cfg.AWSRegion,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.AWSAccessKey,
		SecretKey:    cfg.AWSSecretKey,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}
	log.Printf("Using S3 bucket %s", cfg.S3Bucket)
	return store
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
