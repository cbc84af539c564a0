// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"strings"
	"waitline-server/auth"

	"github.com/labstack/echo/v4"
)

// VerifyAuthMiddleware requires a valid bearer session token and stores
// the verified email under "auth_email" for the handler.
func VerifyAuthMiddleware(sessions *auth.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.Error("Authorization header missing or invalid.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Bearer token is required",
				}
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			email, err := sessions.Verify(token)
			if err != nil {
				logger.Error("Authentication failed.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired authentication token",
				}
			}

			c.Set("auth_email", email)
			return next(c)
		}
	}
}
