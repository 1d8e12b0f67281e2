// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkruglov/chitalka/internal/platform/apperr"
)

// ErrNoRows is a sentinel returned when a queried row doesn't exist.
// Callers map it to the domain condition they know about (for the reader
// that is [apperr.SessionNotFound]); anything unmapped becomes internal.
var ErrNoRows = errors.New("dberr: no rows")

// Wrap inspects a database error and classifies it. It hides internal
// database details from the user while preserving the cause for logging.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
