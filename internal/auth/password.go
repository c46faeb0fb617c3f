package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned for every failed comparison, whether
// the candidate password is wrong or the stored hash is unusable.
// Callers must not be able to tell the two apart.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword derives a salted bcrypt hash at the default cost. Each
// call salts independently, so equal passwords never share a hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a candidate password against a stored hash.
func CheckPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
