// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"waitline-server/models"
)

func exchangeRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/waitlist/auth/exchange", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// generateLink creates a signup plus a magic link and returns the raw token
// embedded in the generated URL.
func generateLink(t *testing.T, h *WaitlistHandlers, email string) (*models.Signup, string) {
	t.Helper()
	signup := models.Signup{FullName: "Ada Lovelace", Email: email}
	if err := h.DB.Create(&signup).Error; err != nil {
		t.Fatalf("failed to create signup: %v", err)
	}
	link, err := h.Links.Generate(&signup)
	if err != nil {
		t.Fatalf("failed to generate magic link: %v", err)
	}
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("failed to parse magic link %q: %v", link, err)
	}
	token := parsed.Query().Get("token")
	if token == "" {
		t.Fatalf("magic link %q carries no token", link)
	}
	return &signup, token
}

func TestExchangeMagicLinkIssuesSession(t *testing.T) {
	h, _ := newTestHandlers(t, &fakeMailer{})
	signup, token := generateLink(t, h, "ada@example.com")

	rec := perform(h.ExchangeMagicLinkHandler, exchangeRequest(`{"token": "`+token+`"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatal("expected a session token")
	}
	email, err := h.Sessions.Verify(resp.SessionToken)
	if err != nil {
		t.Fatalf("issued session token should verify: %v", err)
	}
	if email != signup.Email {
		t.Errorf("session issued for %q, want %q", email, signup.Email)
	}
}

func TestExchangeMagicLinkIsOneTimeUse(t *testing.T) {
	h, _ := newTestHandlers(t, &fakeMailer{})
	_, token := generateLink(t, h, "ada@example.com")

	rec := perform(h.ExchangeMagicLinkHandler, exchangeRequest(`{"token": "`+token+`"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("first exchange: expected 200, got %d", rec.Code)
	}
	rec = perform(h.ExchangeMagicLinkHandler, exchangeRequest(`{"token": "`+token+`"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second exchange: expected 400, got %d", rec.Code)
	}
}

func TestExchangeExpiredMagicLink(t *testing.T) {
	h, conn := newTestHandlers(t, &fakeMailer{})
	_, token := generateLink(t, h, "ada@example.com")

	err := conn.Model(&models.MagicLink{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	if err != nil {
		t.Fatalf("failed to backdate link: %v", err)
	}

	rec := perform(h.ExchangeMagicLinkHandler, exchangeRequest(`{"token": "`+token+`"}`))
	if rec.Code != http.StatusGone {
		t.Errorf("expected 410 for expired link, got %d", rec.Code)
	}
}

func TestExchangeRejectsMissingOrUnknownToken(t *testing.T) {
	h, _ := newTestHandlers(t, &fakeMailer{})

	rec := perform(h.ExchangeMagicLinkHandler, exchangeRequest(`{}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing token: expected 400, got %d", rec.Code)
	}

	rec = perform(h.ExchangeMagicLinkHandler, exchangeRequest(`{"token": "ml_does_not_exist"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown token: expected 400, got %d", rec.Code)
	}
}
