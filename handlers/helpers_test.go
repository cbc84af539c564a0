// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"waitline-server/auth"
	"waitline-server/models"
	"waitline-server/notifications"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMailer records what would have been sent, or fails every send with
// the configured error.
type fakeMailer struct {
	sent []notifications.NotificationData
	err  error
}

func (f *fakeMailer) Send(data notifications.NotificationData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// setupTestDB opens a named shared in-memory database so concurrent
// connections from the pool all see the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

func newTestHandlers(t *testing.T, mailer notifications.Mailer) (*WaitlistHandlers, *gorm.DB) {
	t.Helper()
	conn := setupTestDB(t)
	h := &WaitlistHandlers{
		DB:     conn,
		Mailer: mailer,
		Links: &auth.MagicLinks{
			DB:           conn,
			DashboardURL: "https://waitline.test/dashboard",
			TTL:          time.Hour,
		},
		Sessions: &auth.Sessions{
			Secret: []byte("test-secret"),
			TTL:    time.Hour,
			Issuer: "https://waitline.test",
		},
		FrontendURL: "https://waitline.test",
	}
	return h, conn
}

// perform runs a handler (or middleware-wrapped handler) the way the
// router would, materializing returned errors into the recorder.
func perform(handler echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func signupRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/waitlist/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
