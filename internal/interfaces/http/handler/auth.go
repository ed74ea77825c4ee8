package handler

import (
	"net/http"
	"time"

	application "github.com/debtledger/backend/internal/application/identity"
	"github.com/debtledger/backend/internal/infrastructure/config"
	"github.com/debtledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and the current-user endpoint
type AuthHandler struct {
	BaseHandler
	authService *application.AuthService
	cookies     config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *application.AuthService, cookies config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch h.cookies.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Login authenticates a user and issues a session token. The token is
// returned in the body and also set as an HTTP-only cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.SetSameSite(h.sameSite())
	c.SetCookie(middleware.SessionCookieName, result.Token,
		int(time.Until(result.ExpiresAt).Seconds()),
		h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)

	h.Success(c, result)
}

// Logout invalidates the current session. Logging out twice succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c)
	if token == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	c.SetSameSite(h.sameSite())
	c.SetCookie(middleware.SessionCookieName, "", -1,
		h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)

	h.Success(c, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	h.Success(c, application.ToUserResponse(user))
}
