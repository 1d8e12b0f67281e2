// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire bot.

It defines default timeouts and cross-cutting keys that are shared between
different layers of the system, keeping magic numbers out of business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "chitalka"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading a probe request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// ShutdownTimeout is how long we wait for in-flight work during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StatementTimeout caps any single SQL statement.
	StatementTimeout = 30 * time.Second
)

// # Dialog state

const (
	// DialogTTL is how long an unfinished multi-step conversation survives.
	DialogTTL = 10 * time.Minute

	// SearchResultsTTL is how long a cached search result set survives.
	SearchResultsTTL = 30 * time.Minute

	// LinkGuardTTL bounds the in-flight guard for catalog link processing.
	LinkGuardTTL = 2 * time.Minute
)

// # Telegram

const (
	// UpdateTimeout is the long-polling timeout passed to getUpdates, seconds.
	UpdateTimeout = 30
)
