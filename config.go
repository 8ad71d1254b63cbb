package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the storefront backend.
type Config struct {
	Env          string // "development" or "production"
	Port         string // HTTP port (default: 8080)
	StoreBackend string // "sqlite" or "mongo"
	SQLitePath   string // path to the embedded database file
	MongoURI     string // MongoDB connection string
	MongoDB      string // MongoDB database name
	RedisAddr    string // optional, enables checkout idempotency keys
	AdminEmail   string // well-known admin account email
	AdminPass    string // admin seed password
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Env:          os.Getenv("APP_ENV"),
		Port:         os.Getenv("PORT"),
		StoreBackend: os.Getenv("STORE_BACKEND"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      os.Getenv("MONGO_DB"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		AdminPass:    os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = "sqlite"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "horizon-stores.db"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "horizon_stores"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@horizonstores.com"
	}
	if cfg.AdminPass == "" {
		cfg.AdminPass = "admin123"
	}

	switch cfg.StoreBackend {
	case "sqlite":
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when STORE_BACKEND=mongo")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (expected sqlite or mongo)", cfg.StoreBackend)
	}

	return cfg, nil
}
