// Package validator checks account input before it reaches storage.
package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// https://html.spec.whatwg.org/#valid-e-mail-address
var emailRegex = regexp.MustCompile(`^(?P<name>[a-zA-Z0-9.!#$%&'*+/=?^_ \x60{|}~-]+)@(?P<domain>[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*)$`)

// CleanEmail lowercases and trims an address and verifies its shape. The
// cleaned form is what gets stored and matched on login, so every path that
// accepts an email goes through here.
func CleanEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))

	if email == "" {
		return "", fmt.Errorf("email cannot be empty")
	}

	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("invalid email format")
	}

	return email, nil
}
