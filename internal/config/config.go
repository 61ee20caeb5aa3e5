package config

import (
	"log"
	"os"
	"strings"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port              string
	Env               string
	JWTSecret         string
	StorageBackend    string
	DataDir           string
	RedisAddr         string
	DatabaseURL       string
	SeedFixtures      bool
	AllowedOrigins    []string
	DiscordWebhookURL string
	CookieDomain      string
}

// Load reads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "3000"),
		Env:               getEnvWithDefault("ENV", "development"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		StorageBackend:    getEnvWithDefault("STORAGE_BACKEND", BackendFile),
		DataDir:           getEnvWithDefault("DATA_DIR", "data"),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SeedFixtures:      getEnvWithDefault("SEED_FIXTURES", "true") == "true",
		AllowedOrigins:    loadAllowedOrigins(),
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		CookieDomain:      os.Getenv("DOMAIN"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production-use-openssl-rand-hex-32"
		log.Println("WARNING: Using default JWT_SECRET. Generate a secure secret with: openssl rand -hex 32")
	}

	return cfg
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func loadAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
