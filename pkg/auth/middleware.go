package auth

import (
	"strings"

	"github.com/elibdev/elib/pkg/errcodes"
	"github.com/labstack/echo/v4"
)

// Context keys for storing caller identity.
const (
	ContextKeyUserID = "user_id"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the Bearer token from the Authorization
// header. If valid, it verifies the user still exists and attaches the
// caller's user id to the request context. If not authenticated, it returns
// 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			return errcodes.Unauthorized("Invalid or expired token")
		}

		user, err := m.authService.GetUserByID(ctx, claims.UserID)
		if err != nil {
			return errcodes.Unauthorized("User not found")
		}

		c.Set(ContextKeyUserID, user.ID)

		return next(c)
	}
}

// CallerID returns the authenticated caller's user id attached by
// Authenticate, or "" when the request is anonymous.
func CallerID(c echo.Context) string {
	id, _ := c.Get(ContextKeyUserID).(string)
	return id
}
