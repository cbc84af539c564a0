// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"net/http"
	"strings"
	"waitline-server/auth"
	"waitline-server/commons"
	"waitline-server/handlers"
	"waitline-server/middlewares"
	"waitline-server/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handlers.WaitlistHandlers, limiter *ratelimit.Limiter, sessions *auth.Sessions) {
	commons.Logger.Debug("Registering v1 routes")

	api_v1 := e.Group("/v1/waitlist")
	api_v1.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(commons.GetEnv("CORS_ALLOWED_ORIGIN", "*"), ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	api_v1.POST("/signup", h.SignupHandler, middlewares.RateLimitMiddleware(limiter, "signup"))
	api_v1.GET("/dashboard", h.DashboardHandler, middlewares.VerifyAuthMiddleware(sessions))
	api_v1.GET("/leaderboard", h.LeaderboardHandler)
	api_v1.POST("/auth/exchange", h.ExchangeMagicLinkHandler)
	api_v1.GET("/stats", h.StatsHandler)

	commons.Logger.Info("v1 routes registered successfully")
}
