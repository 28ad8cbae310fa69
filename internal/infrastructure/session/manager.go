// Package session keeps browser sessions honest: the cookie carries only a
// signed session id, while the upstream bearer token stays server-side in
// the token vault.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/evasence/holoo-admin/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

// Claims are the signed contents of the session cookie.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager mints and verifies session cookies.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	issuer     string
	cookieName string
	cookie     config.CookieConfig
}

// NewManager creates a session manager from configuration.
func NewManager(cfg config.SessionConfig, cookie config.CookieConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		issuer:     cfg.Issuer,
		cookieName: cfg.CookieName,
		cookie:     cookie,
	}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a signed session token for the given operator.
// The returned session id keys the token vault entry.
func (m *Manager) Issue(username string) (token, sessionID string, err error) {
	now := time.Now()
	sessionID = uuid.New().String()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    m.issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// Verify parses and validates a session token.
func (m *Manager) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetCookie writes the session cookie. HTTP-only always; the remaining
// attributes come from configuration.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     m.cookie.Path,
		Domain:   m.cookie.Domain,
		MaxAge:   int(m.ttl.Seconds()),
		Secure:   m.cookie.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(m.cookie.SameSite),
	})
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     m.cookie.Path,
		Domain:   m.cookie.Domain,
		MaxAge:   -1,
		Secure:   m.cookie.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(m.cookie.SameSite),
	})
}

// ReadCookie extracts the raw session token from the request, if present.
func (m *Manager) ReadCookie(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
