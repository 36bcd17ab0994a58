package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
	MaxTitleLength    = 255
	MaxColorLength    = 50
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ValidateUsername requires at least 3 characters.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return fmt.Errorf("Username must be at least %d characters long", MinUsernameLength)
	}
	if utf8.RuneCountInString(username) > MaxTitleLength {
		return fmt.Errorf("Username must be at most %d characters long", MaxTitleLength)
	}
	return nil
}

// ValidatePassword requires at least 6 characters.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters long", MinPasswordLength)
	}
	// bcrypt ignores anything past 72 bytes
	if len(password) > 72 {
		return fmt.Errorf("Password must be at most 72 bytes long")
	}
	return nil
}

// ValidateEmail only checks the shape loosely: something@something.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("Please provide a valid email address")
	}
	return nil
}

// ValidateTitle rejects empty and overlong titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("Title must be at most %d characters long", MaxTitleLength)
	}
	return nil
}

// ValidateColor accepts #rgb or #rrggbb.
func ValidateColor(color string) error {
	if color == "" {
		return fmt.Errorf("Color is required")
	}
	if len(color) > MaxColorLength || !hexColorRe.MatchString(color) {
		return fmt.Errorf("Color must be a hex value like #E53E3E")
	}
	return nil
}
