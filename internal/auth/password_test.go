package auth

import (
	"errors"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "securePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "" {
		t.Error("expected non-empty hash")
	}

	if hash == password {
		t.Error("hash should not equal plaintext password")
	}
}

func TestHashPassword_DifferentHashes(t *testing.T) {
	password := "securePassword123"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("same password should produce different hashes due to salt")
	}
}

func TestCheckPassword_Correct(t *testing.T) {
	password := "securePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	err = CheckPassword(hash, password)
	if err != nil {
		t.Errorf("expected correct password to match, got error: %v", err)
	}
}

func TestCheckPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	err = CheckPassword(hash, "wrongPassword")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch for wrong password, got %v", err)
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "anything")
	if err == nil {
		t.Error("expected error for invalid hash")
	}
}

func TestCheckPassword_FailuresAreUniform(t *testing.T) {
	hash, err := HashPassword("securePassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	wrongErr := CheckPassword(hash, "wrongPassword")
	badHashErr := CheckPassword("not-a-bcrypt-hash", "securePassword123")

	// A wrong password and a corrupt hash must be indistinguishable.
	if !errors.Is(wrongErr, ErrPasswordMismatch) || !errors.Is(badHashErr, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch for both failures, got %v and %v", wrongErr, badHashErr)
	}
}
