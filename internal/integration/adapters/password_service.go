// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/self-focus/backend/internal/application/adapter"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

const (
	// DefaultBcryptCost is the production cost factor.
	DefaultBcryptCost = 12

	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

type bcryptPasswords struct {
	cost int
}

// NewPasswordService hashes with DefaultBcryptCost.
func NewPasswordService() adapter.PasswordService {
	return NewPasswordServiceWithCost(DefaultBcryptCost)
}

// NewPasswordServiceWithCost lets tests and the BDD suite use a cheaper cost.
// Out of range costs fall back to DefaultBcryptCost.
func NewPasswordServiceWithCost(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptPasswords{cost: cost}
}

func (s *bcryptPasswords) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *bcryptPasswords) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength accepts 8 to 72 bytes containing an upper case
// letter, a lower case letter and a digit.
func (s *bcryptPasswords) ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < minPasswordLength:
		return fmt.Errorf("%w: shorter than %d characters", domainerror.ErrWeakPassword, minPasswordLength)
	case len(password) > maxPasswordLength:
		return fmt.Errorf("%w: longer than %d bytes", domainerror.ErrWeakPassword, maxPasswordLength)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	switch {
	case !upper:
		return fmt.Errorf("%w: no upper case letter", domainerror.ErrWeakPassword)
	case !lower:
		return fmt.Errorf("%w: no lower case letter", domainerror.ErrWeakPassword)
	case !digit:
		return fmt.Errorf("%w: no digit", domainerror.ErrWeakPassword)
	}
	return nil
}
