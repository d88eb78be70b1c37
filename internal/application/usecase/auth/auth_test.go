package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/internal/application/adapter/fake"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

type fixture struct {
	store  *fake.Store
	tokens *fake.TokenService
	clock  *fake.Clock
}

func newFixture() *fixture {
	return &fixture{
		store:  fake.NewStore(),
		tokens: fake.NewTokenService(),
		clock:  fake.NewClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
	}
}

func (f *fixture) register(t *testing.T, username, email string) *RegisterUserOutput {
	t.Helper()
	uc := NewRegisterUserUseCase(f.store.Users(), f.store.Categories(), fake.PasswordService{}, f.tokens)
	out, err := uc.Execute(context.Background(), RegisterUserInput{Username: username, Email: email, Password: "password123"})
	require.NoError(t, err)
	return out
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	return authErr.Code
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds default categories", func(t *testing.T) {
		f := newFixture()
		out := f.register(t, "alice", "Alice@Example.com")

		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)
		assert.Equal(t, "alice@example.com", out.User.Email)

		cats, err := f.store.Categories().FindByUser(ctx, out.User.ID)
		require.NoError(t, err)
		assert.Len(t, cats, len(entity.DefaultCategories))
		for _, c := range cats {
			assert.True(t, c.IsDefault)
		}
	})

	tests := []struct {
		name     string
		input    RegisterUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{"bad username", RegisterUserInput{Username: "a", Email: "a@b.co", Password: "password123"}, domainerror.ErrCodeInvalidUsername},
		{"bad email", RegisterUserInput{Username: "bob", Email: "nope", Password: "password123"}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Username: "bob", Email: "bob@example.com", Password: "short"}, domainerror.ErrCodeWeakPassword},
		{"email taken", RegisterUserInput{Username: "bob", Email: "alice@example.com", Password: "password123"}, domainerror.ErrCodeEmailExists},
		{"username taken", RegisterUserInput{Username: "alice", Email: "bob@example.com", Password: "password123"}, domainerror.ErrCodeUsernameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.register(t, "alice", "alice@example.com")

			uc := NewRegisterUserUseCase(f.store.Users(), f.store.Categories(), fake.PasswordService{}, f.tokens)
			_, err := uc.Execute(ctx, tt.input)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, authCode(t, err))
		})
	}
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	registered := f.register(t, "alice", "alice@example.com")
	uc := NewLoginUserUseCase(f.store.Users(), fake.PasswordService{}, f.tokens, f.clock)

	t.Run("by username", func(t *testing.T) {
		out, err := uc.Execute(ctx, LoginUserInput{Login: "alice", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, out.User.ID)

		stored, err := f.store.Users().FindByID(ctx, registered.User.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastLoginAt)
		assert.True(t, stored.LastLoginAt.Equal(f.clock.Now()))
	})

	t.Run("by email", func(t *testing.T) {
		_, err := uc.Execute(ctx, LoginUserInput{Login: "ALICE@example.com", Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Execute(ctx, LoginUserInput{Login: "alice", Password: "wrong-password"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := uc.Execute(ctx, LoginUserInput{Login: "mallory", Password: "password123"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	registered := f.register(t, "alice", "alice@example.com")

	refresh := NewRefreshTokenUseCase(f.store.Users(), f.tokens)
	logout := NewLogoutUserUseCase(f.tokens)

	out, err := refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, out.RefreshToken)

	_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err), "rotated token must be rejected")
	assert.ErrorIs(t, err, domainerror.ErrTokenRevoked)

	require.NoError(t, logout.Execute(ctx, LogoutUserInput{RefreshToken: out.RefreshToken}))
	_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	_, err = refresh.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
	assert.NotErrorIs(t, err, domainerror.ErrTokenRevoked)
}

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	registered := f.register(t, "alice", "alice@example.com")
	uc := NewGetCurrentUserUseCase(f.store.Users())

	user, err := uc.Execute(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = uc.Execute(ctx, uuid.New())
	assert.Equal(t, domainerror.ErrCodeUserNotFound, authCode(t, err))
}
