package auth

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword      = errors.New("password must be at least 8 characters and contain a letter, a number and one of @$!%*?&")
	ErrPasswordMismatch  = errors.New("password mismatch")
	passwordAllowedChars = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
	passwordLetter       = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit        = regexp.MustCompile(`\d`)
	passwordSpecial      = regexp.MustCompile(`[@$!%*?&]`)
)

// ValidatePassword enforces the signup password policy.
func ValidatePassword(password string) error {
	if !passwordAllowedChars.MatchString(password) ||
		!passwordLetter.MatchString(password) ||
		!passwordDigit.MatchString(password) ||
		!passwordSpecial.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a candidate password.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
