package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxNameLength = 255

// ValidateName checks a goal or task name. label is used in messages.
func ValidateName(label, name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fmt.Errorf("%s is required", label)
	}

	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return fmt.Errorf("%s is too long (max %d characters)", label, MaxNameLength)
	}

	return nil
}

// ValidatePersonName checks an owner's first or last name, which may be empty.
func ValidatePersonName(name string) error {
	if utf8.RuneCountInString(name) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}
	return nil
}
