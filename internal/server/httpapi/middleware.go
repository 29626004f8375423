package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sentivox/sentivox/internal/server/auth"
	"github.com/sentivox/sentivox/internal/server/models"
)

const userContextKey = "user"

// currentUser returns the authenticated user attached by Protect.
func currentUser(c echo.Context) *models.User {
	u, _ := c.Get(userContextKey).(*models.User)
	return u
}

// extractToken reads the JWT from the Authorization header, falling back
// to the token cookie set at login.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Protect rejects requests without a valid token and loads the token's
// user onto the request context for downstream handlers.
func (h *Handler) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return respondError(c, http.StatusUnauthorized, "Not authorized to access this route")
		}

		claims, err := auth.ParseToken(token, []byte(h.config.SecretKey))
		if err != nil {
			return respondError(c, http.StatusUnauthorized, "Not authorized, token failed")
		}

		user, err := h.users.GetByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return respondError(c, http.StatusUnauthorized, "Not authorized, user not found")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireRoles limits a route to users whose role is in the allow list.
// It must run after Protect.
func (h *Handler) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == nil {
				return respondError(c, http.StatusUnauthorized, "Not authorized to access this route")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return respondError(c, http.StatusForbidden,
				"User role "+user.Role+" is not authorized to access this route")
		}
	}
}
