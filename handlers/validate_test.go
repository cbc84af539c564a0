// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"strings"
	"testing"
	"waitline-server/apperrors"
)

func TestValidateSignupRequestNormalizes(t *testing.T) {
	req := &SignupRequest{
		FullName: "  Ada Lovelace  ",
		Email:    " Ada@Example.COM ",
	}
	if appErr := validateSignupRequest(req); appErr != nil {
		t.Fatalf("expected valid request, got %v", appErr)
	}
	if req.FullName != "Ada Lovelace" {
		t.Errorf("full name not trimmed: %q", req.FullName)
	}
	if req.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", req.Email)
	}
}

func TestValidateSignupRequestCountsCharactersNotBytes(t *testing.T) {
	// 40 characters, 120 bytes
	req := &SignupRequest{
		FullName: strings.Repeat("田", 40),
		Email:    "tanaka@example.com",
	}
	if appErr := validateSignupRequest(req); appErr != nil {
		t.Errorf("a 40-character name should be accepted regardless of encoding, got %v", appErr)
	}

	req = &SignupRequest{
		FullName: strings.Repeat("田", maxFullNameLength+1),
		Email:    "tanaka@example.com",
	}
	if appErr := validateSignupRequest(req); appErr == nil {
		t.Error("a name over the character limit should be rejected")
	}
}

func TestValidateSignupRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		req  SignupRequest
		kind apperrors.Kind
	}{
		{"missing full name", SignupRequest{Email: "a@b.co"}, apperrors.ValidationFailed},
		{"whitespace full name", SignupRequest{FullName: "   ", Email: "a@b.co"}, apperrors.ValidationFailed},
		{"missing email", SignupRequest{FullName: "Ada"}, apperrors.ValidationFailed},
		{"full name too long", SignupRequest{FullName: strings.Repeat("a", maxFullNameLength+1), Email: "a@b.co"}, apperrors.ValidationFailed},
		{"email too long", SignupRequest{FullName: "Ada", Email: strings.Repeat("a", maxEmailLength) + "@b.co"}, apperrors.ValidationFailed},
		{"brand name too long", SignupRequest{FullName: "Ada", Email: "a@b.co", BrandName: strings.Repeat("b", maxBrandNameLength+1)}, apperrors.ValidationFailed},
		{"email without at sign", SignupRequest{FullName: "Ada", Email: "not-an-email"}, apperrors.InvalidEmail},
		{"email without domain dot", SignupRequest{FullName: "Ada", Email: "ada@localhost"}, apperrors.InvalidEmail},
		{"email with spaces", SignupRequest{FullName: "Ada", Email: "ada lovelace@example.com"}, apperrors.InvalidEmail},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := validateSignupRequest(&tc.req)
			if appErr == nil {
				t.Fatal("expected a validation error")
			}
			if appErr.Kind != tc.kind {
				t.Errorf("expected kind %v, got %v (%s)", tc.kind, appErr.Kind, appErr.Message)
			}
		})
	}
}
