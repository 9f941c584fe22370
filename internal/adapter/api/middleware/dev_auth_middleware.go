package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DevAuthMiddleware trusts the X-User-ID header. Only wired in
// development runs without a Firebase project.
type DevAuthMiddleware struct{}

func NewDevAuthMiddleware() *DevAuthMiddleware {
	return &DevAuthMiddleware{}
}

func (m *DevAuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get("X-User-ID")
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "X-User-ID header is required")
		}

		c.Set("uid", userID)

		return next(c)
	}
}
