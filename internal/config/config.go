// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from SHOPKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env           string `env:"SHOPKIT_ENV" envDefault:"development"`
	LogLevel      string `env:"SHOPKIT_LOG_LEVEL" envDefault:"info"`
	ServerHost    string `env:"SHOPKIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SHOPKIT_SERVER_PORT" envDefault:"8080"`
	SessionSecret string `env:"SHOPKIT_SESSION_SECRET,required"`

	// TrustedOrigins may post to the editor from another origin, e.g. the public
	// hostname when a proxy rewrites Host. URLs or host[:port], comma separated.
	TrustedOrigins []string `env:"SHOPKIT_TRUSTED_ORIGINS" envSeparator:","`

	// Storage configuration
	StorageBackend   string `env:"SHOPKIT_STORAGE_BACKEND" envDefault:"sqlite"`
	DBPath           string `env:"SHOPKIT_DB_PATH" envDefault:"./data/shopkit.db"`
	RedisURL         string `env:"SHOPKIT_REDIS_URL"`
	RedisPrefix      string `env:"SHOPKIT_REDIS_PREFIX" envDefault:"shopkit:"`
	StorageKey       string `env:"SHOPKIT_STORAGE_KEY" envDefault:"coffeeShopCMSData"`
	MaxDocumentBytes int    `env:"SHOPKIT_MAX_DOCUMENT_BYTES" envDefault:"5242880"`

	// DocumentCacheTTL keeps the stored document in memory between reads (0 = disabled).
	DocumentCacheTTL time.Duration `env:"SHOPKIT_DOCUMENT_CACHE_TTL" envDefault:"30s"`

	// Editor configuration
	MaxMenuRows         int    `env:"SHOPKIT_MAX_MENU_ROWS" envDefault:"8"`
	ImageMaxDimension   int    `env:"SHOPKIT_IMAGE_MAX_DIMENSION" envDefault:"1600"` // 0 keeps the original size
	ImageMaxUploadBytes int64  `env:"SHOPKIT_IMAGE_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	EditorPasswordHash  string `env:"SHOPKIT_EDITOR_PASSWORD_HASH"` // argon2id hash; enables Basic auth on /admin
	ImagesDir           string `env:"SHOPKIT_IMAGES_DIR" envDefault:"./images"`
	EventRetentionDays  int    `env:"SHOPKIT_EVENT_RETENTION_DAYS" envDefault:"30"`
	EventPruneSchedule  string `env:"SHOPKIT_EVENT_PRUNE_SCHEDULE" envDefault:"@daily"` // cron schedule
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if documents are stored in Redis.
func (c Config) UseRedis() bool {
	return c.StorageBackend == BackendRedis
}

// EditorAuthEnabled returns true if the editor is password protected.
func (c Config) EditorAuthEnabled() bool {
	return c.EditorPasswordHash != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The secret doubles as the CSRF key.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SHOPKIT_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("SHOPKIT_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SHOPKIT_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("SHOPKIT_REDIS_URL is required when SHOPKIT_STORAGE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("SHOPKIT_STORAGE_BACKEND must be one of sqlite, redis, memory; got %q", c.StorageBackend)
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("SHOPKIT_STORAGE_KEY must not be empty")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SHOPKIT_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.MaxDocumentBytes <= 0 {
		return fmt.Errorf("SHOPKIT_MAX_DOCUMENT_BYTES must be positive, got %d", c.MaxDocumentBytes)
	}
	if c.DocumentCacheTTL < 0 {
		return fmt.Errorf("SHOPKIT_DOCUMENT_CACHE_TTL must not be negative, got %s", c.DocumentCacheTTL)
	}
	if c.MaxMenuRows <= 0 {
		return fmt.Errorf("SHOPKIT_MAX_MENU_ROWS must be positive, got %d", c.MaxMenuRows)
	}
	if c.ImageMaxDimension < 0 {
		return fmt.Errorf("SHOPKIT_IMAGE_MAX_DIMENSION must not be negative, got %d", c.ImageMaxDimension)
	}
	if c.ImageMaxUploadBytes <= 0 {
		return fmt.Errorf("SHOPKIT_IMAGE_MAX_UPLOAD_BYTES must be positive, got %d", c.ImageMaxUploadBytes)
	}
	if c.EventRetentionDays < 0 {
		return fmt.Errorf("SHOPKIT_EVENT_RETENTION_DAYS must not be negative, got %d", c.EventRetentionDays)
	}
	if _, err := cron.ParseStandard(c.EventPruneSchedule); err != nil {
		return fmt.Errorf("SHOPKIT_EVENT_PRUNE_SCHEDULE is not a valid cron schedule: %w", err)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
