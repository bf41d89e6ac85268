// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes for constraint violations (PostgreSQL).
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// isUniqueViolation reports whether err is a unique constraint violation,
// covering both the PostgreSQL driver and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// isCheckViolation reports whether err is a CHECK constraint violation.
func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}
