package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/session"
	"github.com/evasence/holoo-admin/internal/interfaces/http/dto"
)

// Context keys set by SessionAuth.
const (
	ContextSessionID = "session_id"
	ContextUsername  = "session_username"
	ContextERPToken  = "erp_token"
)

// SessionAuth verifies the session cookie and resolves the upstream bearer
// token from the vault. Any failure clears the cookie and answers 401, so a
// dead session never lingers in the browser.
func SessionAuth(manager *session.Manager, vault session.TokenVault) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := manager.ReadCookie(c)
		if !ok {
			reject(c, manager, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := manager.Verify(raw)
		if err != nil {
			code := dto.ErrCodeUnauthorized
			if errors.Is(err, session.ErrExpiredToken) {
				code = dto.ErrCodeSessionExpired
			}
			reject(c, manager, code, "Session is not valid")
			return
		}

		token, err := vault.Get(c.Request.Context(), claims.ID)
		if err != nil {
			code := dto.ErrCodeUnauthorized
			if errors.Is(err, shared.ErrSessionExpired) {
				code = dto.ErrCodeSessionExpired
			}
			reject(c, manager, code, "Session has expired, sign in again")
			return
		}

		c.Set(ContextSessionID, claims.ID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextERPToken, token)
		c.Next()
	}
}

func reject(c *gin.Context, manager *session.Manager, code, message string) {
	manager.ClearCookie(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		code, message, GetRequestID(c)))
}

// GetSessionID returns the session id set by SessionAuth, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// GetUsername returns the operator username set by SessionAuth, or "".
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// GetERPToken returns the upstream bearer token set by SessionAuth, or "".
func GetERPToken(c *gin.Context) string {
	return c.GetString(ContextERPToken)
}
