// Package identity handles operator sign-in and session lifecycle.
package identity

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
	"github.com/evasence/holoo-admin/internal/infrastructure/session"
)

// AuthGateway is the slice of the Holoo client the identity flow needs.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*erp.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*erp.User, error)
}

// Session is a freshly established operator session.
type Session struct {
	CookieToken string
	SessionID   string
	Username    string
	User        *erp.User
}

// Service exchanges credentials for sessions and tears them down again.
type Service struct {
	gateway  AuthGateway
	sessions *session.Manager
	vault    session.TokenVault
	logger   *zap.Logger
}

// NewService creates an identity service.
func NewService(gateway AuthGateway, sessions *session.Manager, vault session.TokenVault, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway:  gateway,
		sessions: sessions,
		vault:    vault,
		logger:   logger,
	}
}

// Login authenticates against the accounting system, then mints a session
// whose cookie carries only a signed id. The upstream bearer token goes into
// the vault with the same lifetime as the cookie.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, shared.ErrInvalidInput
	}

	resp, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	cookieToken, sessionID, err := s.sessions.Issue(username)
	if err != nil {
		s.logger.Error("session issue failed", zap.Error(err))
		return nil, shared.ErrInvalidState
	}

	if err := s.vault.Put(ctx, sessionID, resp.Token, s.sessions.TTL()); err != nil {
		s.logger.Error("token vault write failed", zap.Error(err))
		return nil, shared.ErrInvalidState
	}

	s.logger.Info("operator signed in", zap.String("username", username))
	return &Session{
		CookieToken: cookieToken,
		SessionID:   sessionID,
		Username:    username,
		User:        resp.User,
	}, nil
}

// Logout ends the session. The upstream logout is best effort; the vault
// entry is removed regardless so the session is dead server-side.
func (s *Service) Logout(ctx context.Context, sessionID, token string) {
	if token != "" {
		if err := s.gateway.Logout(ctx, token); err != nil {
			s.logger.Warn("upstream logout failed", zap.Error(err))
		}
	}
	if err := s.vault.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("token vault delete failed", zap.Error(err))
	}
}

// CurrentUser returns the operator profile behind the bearer token.
func (s *Service) CurrentUser(ctx context.Context, token string) (*erp.User, error) {
	return s.gateway.Me(ctx, token)
}
