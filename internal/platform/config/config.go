// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Bot) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Chitalka bot.
type Config struct {

	// Telegram
	BotToken string  `env:"BOT_TOKEN,required"`
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) for dialog state and search results
	RedisURL string `env:"REDIS_URL,required"`

	// Library catalog
	INPXFile string `env:"INPX_FILE" envDefault:"./books/librusec_local_fb2.inpx"`
	BooksDir string `env:"BOOKS_DIR" envDefault:"./books"`

	// Reader settings
	PageSize int `env:"PAGE_SIZE" envDefault:"2000"`
	MaxBooks int `env:"MAX_BOOKS" envDefault:"10"`

	// Search result list size per message
	ResultsPerPage int `env:"RESULTS_PER_PAGE" envDefault:"10"`

	// Health probe HTTP server
	HealthPort string `env:"HEALTH_PORT" envDefault:"8080"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("config: PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.MaxBooks < 1 {
		return nil, fmt.Errorf("config: MAX_BOOKS must be positive, got %d", cfg.MaxBooks)
	}

	return cfg, nil
}

// IsAdmin reports whether the given Telegram user id is a configured admin.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
