package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/self-focus/backend/internal/integration/persistence/model"
)

// RefreshTokenState is the lifecycle position of an issued refresh token.
type RefreshTokenState int

const (
	// RefreshTokenUnknown covers tokens that were never stored and expired ones.
	RefreshTokenUnknown RefreshTokenState = iota
	RefreshTokenActive
	RefreshTokenRevoked
)

// TokenRepository stores issued refresh tokens by JWT ID so that each one can
// be spent once.
type TokenRepository interface {
	Save(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error
	State(ctx context.Context, tokenID string, now time.Time) (RefreshTokenState, error)
	// Revoke stamps the token as revoked at the given instant. Unknown and
	// already revoked tokens are left untouched.
	Revoke(ctx context.Context, tokenID string, at time.Time) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Save(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	row := &model.RefreshTokenModel{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) State(ctx context.Context, tokenID string, now time.Time) (RefreshTokenState, error) {
	var row model.RefreshTokenModel
	err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return RefreshTokenUnknown, nil
	case err != nil:
		return RefreshTokenUnknown, err
	case row.RevokedAt != nil:
		return RefreshTokenRevoked, nil
	case !row.ExpiresAt.After(now.UTC()):
		return RefreshTokenUnknown, nil
	}
	return RefreshTokenActive, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", at.UTC()).Error
}
