package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for new hashes. Stored hashes at another cost are
// upgraded on the next successful login.
const Cost = bcrypt.DefaultCost

// MaxBytes is the longest input bcrypt accepts.
const MaxBytes = 72

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	if len(plain) > MaxBytes {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrHashingPassword, MaxBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword on any mismatch, including empty input.
func Verify(plain, hash string) error {
	if plain == "" || hash == "" {
		return ErrInvalidPassword
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}
}

// NeedsRehash reports whether hash was produced at a cost other than Cost.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))

	return err != nil || cost != Cost
}
