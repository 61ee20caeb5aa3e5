package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/config"
	"github.com/adventure-league/tracker/internal/handlers"
	"github.com/adventure-league/tracker/internal/notify"
	"github.com/adventure-league/tracker/internal/router"
	"github.com/adventure-league/tracker/internal/service"
	"github.com/adventure-league/tracker/internal/storage"
	"github.com/adventure-league/tracker/internal/storage/gormstore"
	"github.com/adventure-league/tracker/internal/storage/memstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	stores, err := openStores(ctx, cfg)

	if err != nil {
		log.Fatalf("Failed to open storage backend %q: %v", cfg.StorageBackend, err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret)

	if err != nil {
		log.Fatalf("Failed to initialize token signer: %v", err)
	}

	var notifier service.Notifier

	if cfg.DiscordWebhookURL != "" {
		notifier = notify.NewDiscord(cfg.DiscordWebhookURL)
	}

	tracker := service.New(stores, tokens, notifier)
	hub := handlers.NewHub(cfg.AllowedOrigins)
	h := handlers.New(tracker, hub, cfg.CookieDomain)

	r := router.New(h, hub, tokens, tracker, cfg.AllowedOrigins)

	log.Printf("Starting server on port %s (backend: %s)", cfg.Port, cfg.StorageBackend)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*storage.Stores, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		kv, err := memstore.NewRedisKV(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return memstore.Open(ctx, kv, cfg.SeedFixtures)
	case config.BackendPostgres:
		db, err := gormstore.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return gormstore.Open(ctx, db, cfg.SeedFixtures)
	default:
		kv, err := memstore.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return memstore.Open(ctx, kv, cfg.SeedFixtures)
	}
}
