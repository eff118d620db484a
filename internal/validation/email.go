package validation

import (
	"errors"
	"net/mail"
)

// ValidateEmail checks an owner's email address with the RFC 5322 parser.
// Display-name forms like "Ada <ada@example.com>" are rejected.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}

	return nil
}
