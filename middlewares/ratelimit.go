// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"waitline-server/apperrors"
	"waitline-server/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware applies the sliding-window limiter to one endpoint,
// keyed by client IP.
func RateLimitMiddleware(limiter *ratelimit.Limiter, endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP(), endpoint) {
				return apperrors.New(apperrors.RateLimited, "").HTTP()
			}
			return next(c)
		}
	}
}
