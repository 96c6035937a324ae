package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sports-portal/internal/api"
	"sports-portal/internal/config"
	"sports-portal/internal/repository"
	"sports-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	api.SetupGlobalHandler("notification-worker", cfg.LogLevel)

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	client, err := worker.NewAPNsClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize APNs client: %v", err)
	}
	var pusher worker.Pusher
	if client != nil {
		pusher = client
	}

	nc, err := nats.Connect(cfg.NatsURL, nats.Name("notification-worker"))
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Close()

	w := worker.New(pusher, repository.NewPostgresDeviceTokenRepository(db), cfg.APNSTopic, nc.Publish)
	if err := w.Subscribe(nc); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Println("Notification worker started, waiting for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down notification worker...")
}
