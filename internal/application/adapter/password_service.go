package adapter

// PasswordService hashes account passwords and enforces the password rules
// applied at registration.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns nil only when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength returns domainerror.ErrWeakPassword, wrapped
	// with the failed rule, for passwords that may not be stored.
	ValidatePasswordStrength(password string) error
}
