// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"slices"
	"testing"
)

func TestRequiredEnvKeysProductionDatabase(t *testing.T) {
	t.Setenv("DB_DIALECT", "postgres")
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")

	keys := requiredEnvKeys()
	if !slices.Contains(keys, "JWT_SECRET") {
		t.Errorf("JWT_SECRET must be required with a postgres database, got %v", keys)
	}

	t.Setenv("DB_DIALECT", "mysql")
	if keys := requiredEnvKeys(); !slices.Contains(keys, "JWT_SECRET") {
		t.Errorf("JWT_SECRET must be required with a mysql database, got %v", keys)
	}
}

func TestRequiredEnvKeysDevelopmentDatabase(t *testing.T) {
	t.Setenv("DB_DIALECT", "")
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")

	if keys := requiredEnvKeys(); slices.Contains(keys, "JWT_SECRET") {
		t.Errorf("sqlite development setup should allow the fallback secret, got %v", keys)
	}
}

func TestRequiredEnvKeysEmailProviders(t *testing.T) {
	t.Setenv("DB_DIALECT", "")
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "")

	t.Setenv("EMAIL_PROVIDER", "zepto_mail")
	keys := requiredEnvKeys()
	for _, want := range []string{"EMAIL_API_KEY", "EMAIL_FROM_ADDRESS"} {
		if !slices.Contains(keys, want) {
			t.Errorf("zepto_mail provider should require %s, got %v", want, keys)
		}
	}

	t.Setenv("EMAIL_PROVIDER", "smtp")
	keys = requiredEnvKeys()
	for _, want := range []string{"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM_EMAIL"} {
		if !slices.Contains(keys, want) {
			t.Errorf("smtp provider should require %s, got %v", want, keys)
		}
	}

	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")
	if keys := requiredEnvKeys(); len(keys) != 0 {
		t.Errorf("mock mode should require no provider credentials, got %v", keys)
	}
}
