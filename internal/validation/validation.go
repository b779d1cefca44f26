// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var (
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return fmt.Errorf("username must not exceed 150 characters")
	}
	// Letters, digits and @/./+/-/_ only
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, digits and @/./+/-/_ characters")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidateHexColor checks a #RGB or #RRGGBB color code.
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("color must be a hex code like #49B64E")
	}
	return nil
}

// ValidateSlug checks that a slug contains only letters, digits, hyphens and underscores.
func ValidateSlug(slug string) error {
	if slug == "" || len(slug) > 200 {
		return fmt.Errorf("slug must be 1-200 characters")
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug may contain only letters, digits, hyphens and underscores")
	}
	return nil
}
