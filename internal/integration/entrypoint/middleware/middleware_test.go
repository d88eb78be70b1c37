package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/config"
	"github.com/self-focus/backend/internal/application/adapter/fake"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterMemory(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, MaxAttempts: 2, Window: time.Minute})
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	r := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, hit(r), "window expired")

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.entries)
}

func TestRateLimiterDisabled(t *testing.T) {
	r := limitedRouter(NewRateLimiter(config.RateLimitConfig{Enabled: false, MaxAttempts: 1, Window: time.Minute}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r))
	}
}

func TestRateLimiterRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRedisRateLimiter(client, config.RateLimitConfig{Enabled: true, MaxAttempts: 2, Window: time.Minute})
	r := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
	assert.Empty(t, rl.entries, "counters are kept in redis")

	ttl := mr.TTL(rateLimitKeyPrefix + "10.0.0.1")
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, hit(r))
}

func TestRateLimiterRedisFallback(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	rl := NewRedisRateLimiter(client, config.RateLimitConfig{Enabled: true, MaxAttempts: 1, Window: time.Minute})
	r := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
}

func TestAuthenticate(t *testing.T) {
	tokens := fake.NewTokenService()
	userID := uuid.New()
	pair, err := tokens.IssuePair(context.Background(), userID, "alice@example.com")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		require.True(t, ok)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + pair.AccessToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}
