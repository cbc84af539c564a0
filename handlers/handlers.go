// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"waitline-server/auth"
	"waitline-server/commons"
	"waitline-server/events"
	"waitline-server/models"
	"waitline-server/notifications"

	"gorm.io/gorm"
)

// WaitlistHandlers carries every dependency the request handlers need.
// Clients are constructed once in main and injected here, never held as
// package state.
type WaitlistHandlers struct {
	DB          *gorm.DB
	Mailer      notifications.Mailer
	Links       *auth.MagicLinks
	Sessions    *auth.Sessions
	Events      *events.Publisher
	FrontendURL string
}

func New(
	db *gorm.DB,
	mailer notifications.Mailer,
	links *auth.MagicLinks,
	sessions *auth.Sessions,
	publisher *events.Publisher,
) *WaitlistHandlers {
	return &WaitlistHandlers{
		DB:          db,
		Mailer:      mailer,
		Links:       links,
		Sessions:    sessions,
		Events:      publisher,
		FrontendURL: commons.GetEnv("FRONTEND_URL", "https://waitline.app"),
	}
}

func (h *WaitlistHandlers) shareLink(referralCode string) string {
	return h.FrontendURL + "/?ref=" + referralCode
}

// recordStat is best-effort bookkeeping for the public stats endpoint.
func (h *WaitlistHandlers) recordStat(statsType models.StatsType) {
	stat := models.Stats{Type: statsType}
	if err := h.DB.Create(&stat).Error; err != nil {
		commons.Logger.Errorf("Failed to record %s stat: %v", statsType, err)
	}
}
