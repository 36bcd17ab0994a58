package util

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	for _, name := range []string{"abc", "testuser", "用户名"} {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("ValidateUsername(%q) error = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"", "ab", strings.Repeat("a", 256)} {
		if err := ValidateUsername(name); err == nil {
			t.Errorf("ValidateUsername(%q) error = nil, want error", name)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret"); err != nil {
		t.Errorf("ValidatePassword(6 chars) error = %v, want nil", err)
	}
	for _, pwd := range []string{"", "12345", strings.Repeat("x", 73)} {
		if err := ValidatePassword(pwd); err == nil {
			t.Errorf("ValidatePassword(len %d) error = nil, want error", len(pwd))
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"test@example.com", "a@b"} {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}
	for _, email := range []string{"", "plain", "@example.com", "user@"} {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Sprint 1"); err != nil {
		t.Errorf("ValidateTitle() error = %v, want nil", err)
	}
	for _, title := range []string{"", "   ", strings.Repeat("t", 256)} {
		if err := ValidateTitle(title); err == nil {
			t.Errorf("ValidateTitle(len %d) error = nil, want error", len(title))
		}
	}
}

func TestValidateColor(t *testing.T) {
	for _, color := range []string{"#E53E3E", "#fff", "#38a169"} {
		if err := ValidateColor(color); err != nil {
			t.Errorf("ValidateColor(%q) error = %v, want nil", color, err)
		}
	}
	if err := ValidateColor(""); err == nil || err.Error() != "Color is required" {
		t.Errorf("ValidateColor(\"\") error = %v, want Color is required", err)
	}
	for _, color := range []string{"red", "#12345", "E53E3E", "#GGGGGG"} {
		if err := ValidateColor(color); err == nil {
			t.Errorf("ValidateColor(%q) error = nil, want error", color)
		}
	}
}
