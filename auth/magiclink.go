// SPDX-License-Identifier: GPL-3.0-only

// Package auth issues one-time magic links and the session tokens they are
// exchanged for. A magic link row is single use; the dashboard itself is
// authenticated with a signed session token, never with the link token.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"waitline-server/commons"
	"waitline-server/crypto"
	"waitline-server/models"

	"gorm.io/gorm"
)

var (
	ErrLinkNotFound = errors.New("magic link not found or already used")
	ErrLinkExpired  = errors.New("magic link has expired")
)

type MagicLinks struct {
	DB           *gorm.DB
	DashboardURL string
	TTL          time.Duration
}

func NewMagicLinks(db *gorm.DB) *MagicLinks {
	ttl := 24 * time.Hour
	if v := commons.GetEnv("MAGIC_LINK_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}
	return &MagicLinks{
		DB:           db,
		DashboardURL: commons.GetEnv("DASHBOARD_URL", "https://waitline.app/dashboard"),
		TTL:          ttl,
	}
}

// Generate creates a fresh one-time token for the signup and returns the
// full link to email out. Earlier unused links stay valid until they
// expire; a returning user may hold several.
func (m *MagicLinks) Generate(signup *models.Signup) (string, error) {
	token, err := crypto.GenerateRandomString("ml_", 32, "hex")
	if err != nil {
		return "", fmt.Errorf("failed to generate magic link token: %w", err)
	}

	link := models.MagicLink{
		Token:     token,
		ExpiresAt: time.Now().Add(m.TTL),
		SignupID:  signup.ID,
	}
	if err := m.DB.Create(&link).Error; err != nil {
		return "", fmt.Errorf("failed to store magic link: %w", err)
	}

	return m.DashboardURL + "?token=" + token, nil
}

// Exchange consumes a one-time token and returns the signup it belongs to.
func (m *MagicLinks) Exchange(token string) (*models.Signup, error) {
	link := models.MagicLink{}
	err := m.DB.Preload("Signup").
		Where("token = ? AND is_used = ?", token, false).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to look up magic link: %w", err)
	}

	if time.Now().After(link.ExpiresAt) {
		return nil, ErrLinkExpired
	}

	// guarded update so two concurrent exchanges cannot both consume
	// the token
	res := m.DB.Model(&models.MagicLink{}).
		Where("id = ? AND is_used = ?", link.ID, false).
		Update("is_used", true)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark magic link used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrLinkNotFound
	}

	return &link.Signup, nil
}
