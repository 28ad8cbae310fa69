package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/config"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
	"github.com/evasence/holoo-admin/internal/infrastructure/session"
)

type stubAuthGateway struct {
	loginResp *erp.LoginResponse
	loginErr  error
	logoutErr error

	loggedOutWith string
}

func (g *stubAuthGateway) Login(context.Context, string, string) (*erp.LoginResponse, error) {
	return g.loginResp, g.loginErr
}

func (g *stubAuthGateway) Logout(_ context.Context, token string) error {
	g.loggedOutWith = token
	return g.logoutErr
}

func (g *stubAuthGateway) Me(context.Context, string) (*erp.User, error) {
	return &erp.User{Username: "admin"}, nil
}

func newTestService(gw AuthGateway, vault session.TokenVault) *Service {
	manager := session.NewManager(config.SessionConfig{
		Secret:     "test-secret-test-secret-test-sec",
		TTL:        7 * 24 * time.Hour,
		Issuer:     "holoo-admin",
		CookieName: "holoo_session",
	}, config.CookieConfig{Path: "/"})
	return NewService(gw, manager, vault, nil)
}

func TestLogin(t *testing.T) {
	t.Run("success vaults the bearer token", func(t *testing.T) {
		vault := session.NewMemoryVault()
		gw := &stubAuthGateway{loginResp: &erp.LoginResponse{
			Token: "bearer-123",
			User:  &erp.User{Username: "admin"},
		}}
		svc := newTestService(gw, vault)

		sess, err := svc.Login(context.Background(), "admin", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, sess.CookieToken)
		assert.NotEmpty(t, sess.SessionID)
		assert.Equal(t, "admin", sess.Username)

		// the bearer token is retrievable by session id only
		stored, err := vault.Get(context.Background(), sess.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "bearer-123", stored)
		assert.NotContains(t, sess.CookieToken, "bearer-123")
	})

	t.Run("bad credentials pass through", func(t *testing.T) {
		gw := &stubAuthGateway{loginErr: shared.ErrUnauthorized}
		svc := newTestService(gw, session.NewMemoryVault())

		_, err := svc.Login(context.Background(), "admin", "wrong")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("blank credentials are rejected locally", func(t *testing.T) {
		svc := newTestService(&stubAuthGateway{}, session.NewMemoryVault())
		_, err := svc.Login(context.Background(), "  ", "")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears the vault even when upstream fails", func(t *testing.T) {
		vault := session.NewMemoryVault()
		require.NoError(t, vault.Put(context.Background(), "sid", "bearer", time.Minute))

		gw := &stubAuthGateway{logoutErr: errors.New("upstream down")}
		svc := newTestService(gw, vault)

		svc.Logout(context.Background(), "sid", "bearer")

		assert.Equal(t, "bearer", gw.loggedOutWith)
		_, err := vault.Get(context.Background(), "sid")
		assert.ErrorIs(t, err, shared.ErrSessionExpired)
	})
}
