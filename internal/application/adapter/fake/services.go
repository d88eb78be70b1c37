package fake

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

// Clock is a settable adapter.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Locker is an in-process adapter.EntityLocker keyed by string.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	Keys  []string
}

// NewLocker creates a Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// WithLock runs fn holding the mutex for key and records the key.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.Keys = append(l.Keys, key)
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn(ctx)
}

// PasswordService stores passwords with a visible prefix instead of hashing.
type PasswordService struct{}

// HashPassword prefixes the password.
func (PasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

// VerifyPassword compares against the prefixed form.
func (PasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// ValidatePasswordStrength requires eight characters.
func (PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

// TokenService issues opaque tokens of the form "<kind>:<user>:<email>:<n>".
type TokenService struct {
	mu      sync.Mutex
	n       int
	revoked map[string]bool
}

// NewTokenService creates a TokenService.
func NewTokenService() *TokenService {
	return &TokenService{revoked: make(map[string]bool)}
}

func (t *TokenService) issue(kind string, userID uuid.UUID, email string) string {
	t.n++
	return strings.Join([]string{kind, userID.String(), email, strconv.Itoa(t.n)}, ":")
}

// IssuePair issues an access and refresh token.
func (t *TokenService) IssuePair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &adapter.TokenPair{
		AccessToken:  t.issue("access", userID, email),
		RefreshToken: t.issue("refresh", userID, email),
	}, nil
}

func parse(kind, token string) (*adapter.TokenClaims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 4 || parts[0] != kind {
		return nil, domainerror.ErrInvalidToken
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: id, Email: parts[2], TokenID: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// VerifyAccess parses an access token.
func (t *TokenService) VerifyAccess(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return parse("access", token)
}

// VerifyRefresh parses a refresh token and rejects revoked ones.
func (t *TokenService) VerifyRefresh(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := parse("refresh", token)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revoked[token] {
		return nil, domainerror.ErrTokenRevoked
	}
	return claims, nil
}

// Revoke marks a refresh token as spent.
func (t *TokenService) Revoke(_ context.Context, token string) error {
	if _, err := parse("refresh", token); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[token] = true
	return nil
}

// EmailService records queued notifications.
type EmailService struct {
	mu              sync.Mutex
	GoalCompleted   []adapter.QueueGoalCompletedInput
	StreakMilestone []adapter.QueueStreakMilestoneInput
}

// QueueGoalCompletedEmail records the request.
func (e *EmailService) QueueGoalCompletedEmail(_ context.Context, input adapter.QueueGoalCompletedInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.GoalCompleted = append(e.GoalCompleted, input)
	return nil
}

// QueueStreakMilestoneEmail records the request.
func (e *EmailService) QueueStreakMilestoneEmail(_ context.Context, input adapter.QueueStreakMilestoneInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.StreakMilestone = append(e.StreakMilestone, input)
	return nil
}
