package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// ValidateEmail enforces the campus domain restriction. allowAny is the
// dev-mode escape hatch for local testing with throwaway inboxes.
func ValidateEmail(email, domain string, allowAny bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !allowAny && !strings.HasSuffix(email, domain) {
		return fmt.Errorf("only %s emails are allowed", domain)
	}
	return nil
}

func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 3 {
		return fmt.Errorf("name must be at least 3 characters long")
	}
	return nil
}

func ValidateMobile(mobile string) error {
	if !mobileRegex.MatchString(mobile) {
		return fmt.Errorf("mobile number must be exactly 10 digits")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	return nil
}

func ValidatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	return nil
}

func ValidateItemTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}
