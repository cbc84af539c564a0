// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"os"
	"slices"
	"strings"
	"time"
	"waitline-server/auth"
	"waitline-server/commons"
	"waitline-server/db"
	"waitline-server/events"
	"waitline-server/handlers"
	"waitline-server/notifications"
	"waitline-server/ratelimit"
	"waitline-server/routes"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	requireProviderEnv()

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}

	mailer := notifications.NewDispatcher()
	links := auth.NewMagicLinks(db.Conn)
	sessions := auth.NewSessions()

	publisher, err := events.NewPublisher()
	if err != nil {
		commons.Logger.Warnf("Activity events unavailable, continuing without them: %v", err)
		publisher = nil
	}
	defer publisher.Close()

	limiter := ratelimit.NewLimiter(db.Conn)
	limiter.StartPruning(time.Hour)

	h := handlers.New(db.Conn, mailer, links, sessions, publisher)
	routes.RegisterRoutes(e, h, limiter, sessions)

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}

// requireProviderEnv fails fast when the configured email provider is
// missing its credentials or a production database is paired with the
// default JWT secret; both would otherwise only surface at request time.
func requireProviderEnv() {
	if keys := requiredEnvKeys(); len(keys) > 0 {
		commons.RequireEnv(keys...)
	}
}

func requiredEnvKeys() []string {
	var keys []string

	// a server-grade database means production; session tokens must not
	// be signed with the development fallback secret there
	switch strings.ToLower(commons.GetEnv("DB_DIALECT")) {
	case "postgres", "mysql":
		keys = append(keys, "JWT_SECRET")
	}

	if commons.GetEnv("MOCK_EMAIL_NOTIFICATIONS") == "true" {
		return keys
	}
	provider := notifications.NotificationProviders(
		commons.GetEnv("EMAIL_PROVIDER", string(notifications.ZeptoMail)),
	)
	switch provider {
	case notifications.ZeptoMail:
		keys = append(keys, "EMAIL_API_KEY", "EMAIL_FROM_ADDRESS")
	case notifications.SMTP:
		keys = append(keys, "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM_EMAIL")
	}
	return keys
}
