package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidMobile   = errors.New("invalid mobile number")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidPassword = errors.New("invalid password")
	ErrMissingContact  = errors.New("email or mobile required")
)

var (
	emailRegex  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	mobileRegex = regexp.MustCompile(`^[0-9+][0-9\-\s]{6,19}$`)
	nameRegex   = regexp.MustCompile(`^[\p{L}0-9_ .'-]{2,60}$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateMobile(mobile string) error {
	if !mobileRegex.MatchString(mobile) {
		return ErrInvalidMobile
	}
	return nil
}

func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateContact enforces that at least one of email/mobile is present and
// that whichever is present is well-formed.
func ValidateContact(email, mobile string) error {
	if email == "" && mobile == "" {
		return ErrMissingContact
	}
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return err
		}
	}
	if mobile != "" {
		if err := ValidateMobile(mobile); err != nil {
			return err
		}
	}
	return nil
}
