// Package validation holds input rules for accounts and groups.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// Usernames become the first path segment of profile URLs, so anything that
// collides with a fixed route is refused.
var reservedUsernames = map[string]struct{}{
	"new":     {},
	"group":   {},
	"auth":    {},
	"404":     {},
	"500":     {},
	"health":  {},
	"metrics": {},
	"static":  {},
}

// ValidateUsername checks format and reserved route words.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.New("username must be 3-30 characters and contain only letters, numbers, underscores, and hyphens")
	}
	if IsReservedUsername(username) {
		return errors.New("username is reserved")
	}
	return nil
}

// IsReservedUsername reports whether username shadows a fixed route.
func IsReservedUsername(username string) bool {
	_, ok := reservedUsernames[strings.ToLower(username)]
	return ok
}

// ValidateEmail accepts a bare address, no display name.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return errors.New("email is too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address, "@") {
		return errors.New("enter a valid email address")
	}
	return nil
}

// ValidatePassword requires a length between 8 and 128 runes containing at
// least one letter and one digit.
func ValidatePassword(password string) error {
	n := len([]rune(password))
	if n < minPasswordLength || n > maxPasswordLength {
		return fmt.Errorf("password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}
