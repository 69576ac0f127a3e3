package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDBURL = "sqlite:nutritrack.db"
	defaultPort  = "3000"
)

// config is read once at startup from the environment, after an optional .env.
type config struct {
	DBURL          string
	Port           string
	GinMode        string
	TrustedProxies []string

	// OwnerUsername and OwnerPassword bootstrap the single account on first
	// start when no user with that name exists. Leave unset when the account
	// is created with cmd/create-user.
	OwnerUsername string
	OwnerPassword string
}

func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := config{
		DBURL:         getenv("DB_URL", defaultDBURL),
		Port:          getenv("PORT", defaultPort),
		GinMode:       os.Getenv("GIN_MODE"),
		OwnerUsername: os.Getenv("OWNER_USERNAME"),
		OwnerPassword: os.Getenv("OWNER_PASSWORD"),
	}
	if raw := os.Getenv("TRUSTED_PROXIES"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}
	if cfg.OwnerUsername != "" && cfg.OwnerPassword == "" {
		return config{}, errors.New("OWNER_PASSWORD is required when OWNER_USERNAME is set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
