package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/integration/persistence"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	tokenIssuer = "self-focus"
)

// TokenDurations configures the token lifetimes. Zero values fall back to
// 15 minutes and 7 days.
type TokenDurations struct {
	Access  time.Duration
	Refresh time.Duration
}

// CustomClaims are the JWT claims of both token types.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type jwtTokens struct {
	secret    []byte
	durations TokenDurations
	store     persistence.TokenRepository
}

// NewTokenService signs HS256 tokens with secret and records refresh tokens
// in store.
func NewTokenService(secret string, durations TokenDurations, store persistence.TokenRepository) adapter.TokenService {
	if durations.Access <= 0 {
		durations.Access = 15 * time.Minute
	}
	if durations.Refresh <= 0 {
		durations.Refresh = 7 * 24 * time.Hour
	}
	return &jwtTokens{
		secret:    []byte(secret),
		durations: durations,
		store:     store,
	}
}

func (s *jwtTokens) IssuePair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	now := time.Now().UTC()

	access, _, err := s.sign(userID, email, tokenTypeAccess, now, s.durations.Access)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, refreshClaims, err := s.sign(userID, email, tokenTypeRefresh, now, s.durations.Refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.store.Save(ctx, refreshClaims.ID, userID, refreshClaims.ExpiresAt.Time); err != nil {
		return nil, err
	}

	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *jwtTokens) VerifyAccess(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, tokenTypeAccess)
}

func (s *jwtTokens) VerifyRefresh(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.verify(token, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	state, err := s.store.State(ctx, claims.TokenID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	switch state {
	case persistence.RefreshTokenActive:
		return claims, nil
	case persistence.RefreshTokenRevoked:
		return nil, domainerror.ErrTokenRevoked
	default:
		return nil, domainerror.ErrInvalidToken
	}
}

func (s *jwtTokens) Revoke(ctx context.Context, token string) error {
	claims, err := s.verify(token, tokenTypeRefresh)
	if err != nil {
		return err
	}
	if err := s.store.Revoke(ctx, claims.TokenID, time.Now()); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// sign issues a token with a fresh JWT ID so that two tokens minted in the
// same second still differ.
func (s *jwtTokens) sign(userID uuid.UUID, email, tokenType string, now time.Time, ttl time.Duration) (string, *CustomClaims, error) {
	claims := &CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (s *jwtTokens) verify(token, wantType string) (*adapter.TokenClaims, error) {
	claims := &CustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domainerror.ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: expected %s token", domainerror.ErrInvalidToken, wantType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", domainerror.ErrInvalidToken)
	}

	out := &adapter.TokenClaims{
		UserID:  userID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
