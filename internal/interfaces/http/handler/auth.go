package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/catalog"
	"github.com/evasence/holoo-admin/internal/application/identity"
	"github.com/evasence/holoo-admin/internal/infrastructure/session"
	"github.com/evasence/holoo-admin/internal/interfaces/http/middleware"
)

// AuthHandler handles operator sign-in and sign-out.
type AuthHandler struct {
	BaseHandler
	identity *identity.Service
	sessions *session.Manager
	guard    *catalog.SearchGuard
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(identitySvc *identity.Service, sessions *session.Manager, guard *catalog.SearchGuard) *AuthHandler {
	return &AuthHandler{identity: identitySvc, sessions: sessions, guard: guard}
}

// LoginRequest carries the operator credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the accounting system and sets the session
// cookie. The upstream bearer token never appears in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	sess, err := h.identity.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sessions.SetCookie(c, sess.CookieToken)
	h.Success(c, gin.H{
		"username": sess.Username,
		"user":     sess.User,
	})
}

// Logout tears the session down and clears the cookie. It succeeds even when
// the upstream logout fails; the session is dead either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := sessionID(c)
	h.identity.Logout(c.Request.Context(), sid, erpToken(c))
	if h.guard != nil {
		h.guard.Forget(sid)
	}
	h.sessions.ClearCookie(c)
	h.NoContent(c)
}

// Me returns the operator behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.identity.CurrentUser(c.Request.Context(), erpToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"username": middleware.GetUsername(c),
		"user":     user,
	})
}
