// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"log/slog"

	"github.com/self-focus/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserUseCase revokes the caller's refresh token.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute never fails: an unknown or already revoked token is still a logout.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if input.RefreshToken == "" {
		return nil
	}
	if err := uc.tokenService.Revoke(ctx, input.RefreshToken); err != nil {
		slog.Warn("Failed to revoke refresh token on logout", "error", err)
	}
	return nil
}
