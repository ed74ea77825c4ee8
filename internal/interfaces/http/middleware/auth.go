package middleware

import (
	"net/http"
	"strings"

	application "github.com/debtledger/backend/internal/application/identity"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserKey is the gin context key holding the authenticated user
	ContextUserKey = "auth_user"
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "auth_token"
	// bearerPrefix on the Authorization header
	bearerPrefix = "Bearer "
)

// extractToken reads the session token from the Authorization header or,
// failing that, the session cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SessionAuth resolves the session token into the acting user and
// aborts with 401 when it cannot. Handlers downstream read the user
// with CurrentUser.
func SessionAuth(authService *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an
// admin. Must run after SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c)
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(shared.ErrForbidden.Code, shared.ErrForbidden.Message))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil when the request
// did not pass SessionAuth.
func CurrentUser(c *gin.Context) *identity.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*identity.User)
	if !ok {
		return nil
	}
	return user
}

// SessionToken returns the raw session token of the current request
func SessionToken(c *gin.Context) string {
	return extractToken(c)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(shared.ErrUnauthorized.Code, shared.ErrUnauthorized.Message))
}
