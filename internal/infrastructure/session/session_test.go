package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(config.SessionConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        ttl,
		Issuer:     "holoo-admin-test",
		CookieName: "holoo_session",
	}, config.CookieConfig{Path: "/", SameSite: "lax"})
}

func TestManagerIssueAndVerify(t *testing.T) {
	m := newTestManager(time.Hour)

	token, sessionID, err := m.Issue("ali")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessionID)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ali", claims.Username)
	assert.Equal(t, sessionID, claims.ID)
	assert.Equal(t, "holoo-admin-test", claims.Issuer)
}

func TestManagerVerifyRejects(t *testing.T) {
	m := newTestManager(time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := m.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager(config.SessionConfig{
			Secret:     "another-secret-another-secret-xx",
			TTL:        time.Hour,
			CookieName: "holoo_session",
		}, config.CookieConfig{})
		token, _, err := other.Issue("ali")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := newTestManager(-time.Minute)
		token, _, err := short.Issue("ali")
		require.NoError(t, err)

		_, err = short.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestMemoryVault(t *testing.T) {
	ctx := context.Background()
	vault := NewMemoryVault()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, vault.Put(ctx, "sid", "bearer-token", time.Hour))
		token, err := vault.Get(ctx, "sid")
		require.NoError(t, err)
		assert.Equal(t, "bearer-token", token)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := vault.Get(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrSessionExpired)
	})

	t.Run("expired entry", func(t *testing.T) {
		require.NoError(t, vault.Put(ctx, "old", "tok", -time.Second))
		_, err := vault.Get(ctx, "old")
		assert.ErrorIs(t, err, shared.ErrSessionExpired)
	})

	t.Run("delete ends the session", func(t *testing.T) {
		require.NoError(t, vault.Put(ctx, "gone", "tok", time.Hour))
		require.NoError(t, vault.Delete(ctx, "gone"))
		_, err := vault.Get(ctx, "gone")
		assert.ErrorIs(t, err, shared.ErrSessionExpired)
	})
}
