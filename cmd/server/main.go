// Package main is the entry point for the storefront API server.
//
// The main package stays minimal. It reads configuration from the
// environment (optionally seeded from a .env file), builds the logger and
// hands both to internal/server, which owns everything else.
//
// Any failure before the listener is up is a startup failure: it is logged
// and the process exits with status 1.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/storefront-api/internal/auth"
	"github.com/sakif/storefront-api/internal/server"
	"github.com/sakif/storefront-api/internal/upstream"
)

func main() {
	// === 1. LOAD .env ===
	// godotenv never overrides variables already set in the environment, so a
	// real deployment wins over a local .env. A missing file is not an error.
	envErr := godotenv.Load()

	// === 2. SET UP LOGGING ===
	level, levelErr := parseLevel(os.Getenv("LOG_LEVEL"))
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		fatal(logger, "failed to load .env", envErr)
	}
	if levelErr != nil {
		fatal(logger, "invalid LOG_LEVEL", levelErr)
	}

	// === 3. READ CONFIGURATION ===
	cfg, err := loadConfig()
	if err != nil {
		fatal(logger, "invalid configuration", err)
	}

	// === 4. DATABASE DIRECTORY ===
	// The default "data/database.db" lives in a directory that may not exist
	// on a fresh checkout.
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			fatal(logger, "failed to create database directory", err, slog.String("dir", dbDir))
		}
	}

	// === 5. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		fatal(logger, "failed to create server", err)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		fatal(logger, "server error", err)
	}
}

// loadConfig reads server.Config from the environment, applying defaults for
// anything unset.
func loadConfig() (server.Config, error) {
	cfg := server.Config{
		Port:          8000,
		DBPath:        envOr("DB_PATH", "data/database.db"),
		RandomUserURL: envOr("RANDOMUSER_URL", upstream.DefaultRandomUserURL),
		CatalogURL:    envOr("CATALOG_URL", upstream.DefaultCatalogURL),
		BcryptCost:    auth.DefaultCost,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return cfg, fmt.Errorf("PORT %q: must be a number between 1 and 65535", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("UPSTREAM_TIMEOUT %q: must be a non-negative duration such as 10s", v)
		}
		cfg.UpstreamTimeout = d
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("BCRYPT_COST %q: must be a number", v)
		}
		cfg.BcryptCost = cost // range is checked by auth.NewPasswordService
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%q: want debug, info, warn or error", s)
	}
	return level, nil
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	logger.Error(msg, append(attrs, slog.String("error", err.Error()))...)
	os.Exit(1)
}
