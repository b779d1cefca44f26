// Package repository provides data access layer implementations for the application.
package repository

import (
	"strings"
)

// IsUniqueViolation reports whether err came from a unique constraint.
// Postgres and SQLite word these differently; both are matched so the same
// repositories back production and tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
