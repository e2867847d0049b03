package pkg

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// AdminPasswordHashCost is used for the single admin login.
	AdminPasswordHashCost = 14
	MinPasswordLength     = 6
)

var ErrPasswordTooShort = fmt.Errorf("password must have at least %d characters", MinPasswordLength)

// HashPassword returns the bcrypt hash stored as VIBEFIT_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), AdminPasswordHashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("password over 72 bytes: %w", err)
	}
	return string(hash), err
}

// CheckPasswordHash reports whether password matches the bcrypt hash.
// A malformed hash never matches.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
