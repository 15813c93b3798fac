package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// AuthMiddleware is the gate in front of protected routes: it requires a
// "Bearer <token>" authorization header, verifies the token, and stores the
// resolved user id in the request context for ownership checks downstream.
func (h *Handler) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return h.Error(c, http.StatusUnauthorized, "Not authorized, no token", nil)
		}

		userID, err := h.sessions.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return h.Error(c, http.StatusUnauthorized, "Not authorized, token failed", nil)
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
