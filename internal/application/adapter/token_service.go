package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is the session handed to a client after register, login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the session a token belongs to.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService signs and verifies session tokens. Refresh tokens are
// single-use: the refresh flow revokes the presented token before issuing a
// new pair.
type TokenService interface {
	IssuePair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)

	VerifyAccess(ctx context.Context, token string) (*TokenClaims, error)

	// VerifyRefresh also checks the token against the session store and fails
	// with domainerror.ErrTokenRevoked once the token was revoked.
	VerifyRefresh(ctx context.Context, token string) (*TokenClaims, error)

	// Revoke ends the session of a refresh token. Revoking twice is not an error.
	Revoke(ctx context.Context, token string) error
}
