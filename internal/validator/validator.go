package validator

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
)

func ValidateString(value string, minLength int, maxLength int) error {
	n := len(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}

	return nil
}

func ValidatePassword(value string) (err error) {
	// Define a general value rule that covers all conditions
	err = errors.New("password must be between 8 and 30 characters long and contain at least one digit and one letter")

	if len(value) < 8 || len(value) > 30 {
		return
	}

	if !regexp.MustCompile(`[0-9]`).MatchString(value) {
		return
	}

	if !regexp.MustCompile(`[a-zA-Z]`).MatchString(value) {
		return
	}

	return nil
}

func ValidateEmail(value string) error {
	if err := ValidateString(value, 6, 200); err != nil {
		return err
	}

	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("is not a valid email address")
	}

	return nil
}

func ValidateDisplayName(value string) error {
	return ValidateString(value, 1, 100)
}
