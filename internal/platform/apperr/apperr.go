// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for Chitalka.

It provides a rich error type that bridges the gap between low-level
domain/storage errors and the single user-visible message each failure maps to.

Architecture:

  - AppError: A struct containing a machine-readable Code and the exact
    MarkdownV2 text shown to the user in chat.
  - Recoverability: every constructor here produces an expected condition.
    Anything wrapped by [Internal] is logged server-side and surfaced as a
    generic message; it must never crash the update loop.

Every error that leaves a service layer should be an [AppError] so the
transport can render it without switching on concrete types.
*/
package apperr

import (
	"errors"
	"fmt"
)

// AppError is the canonical error type for the Chitalka bot.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to users
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "SESSION_NOT_FOUND").
	Code string
	// Message is the user-visible MarkdownV2 text for this condition.
	Message string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Expected conditions

// UnreadableDocument reports that no readable body could be extracted from
// an uploaded or delivered book file.
func UnreadableDocument(cause error) *AppError {
	return &AppError{
		Code:    "UNREADABLE_DOCUMENT",
		Message: "Не удалось прочитать книгу\\. Возможно, файл поврежден\\.",
		Cause:   cause,
	}
}

// CapacityExceeded reports that the user already tracks the maximum number
// of reading sessions. The message tells the user their current book count.
func CapacityExceeded(limit, current int) *AppError {
	return &AppError{
		Code: "CAPACITY_EXCEEDED",
		Message: fmt.Sprintf(
			"Вы достигли лимита в %d книг \\(сейчас сохранено: %d\\)\\. "+
				"Пожалуйста, удалите одну из старых книг с помощью команды /mybooks, чтобы добавить новую\\.",
			limit, current),
	}
}

// SessionNotFound reports a navigation action against a book identity that
// is no longer stored (deleted, expired, or a bad reference).
func SessionNotFound() *AppError {
	return &AppError{
		Code:    "SESSION_NOT_FOUND",
		Message: "Сессия чтения завершена\\. Пожалуйста, выберите книгу из списка или отправьте новую\\.",
	}
}

// InvalidPageNumber reports a requested page outside [1, totalPages].
func InvalidPageNumber(totalPages int) *AppError {
	return &AppError{
		Code:    "INVALID_PAGE",
		Message: fmt.Sprintf("Укажите число от 1 до %d\\.", totalPages),
	}
}

// MalformedArchive reports a delivered container that could not be opened.
func MalformedArchive(cause error) *AppError {
	return &AppError{
		Code:    "MALFORMED_ARCHIVE",
		Message: "Это поврежденный ZIP\\-архив\\.",
		Cause:   cause,
	}
}

// NotFound reports a referenced catalog entry or resource that does not exist.
func NotFound(msg string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: msg,
	}
}

// # Unexpected conditions

// Internal wraps an unexpected server-side error. The cause is stored for
// logging but the user only ever sees the generic message.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Произошла внутренняя ошибка\\. Пожалуйста, попробуйте еще раз\\.",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given machine code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
