// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"waitline-server/models"

	"github.com/labstack/echo/v4"
)

const leaderboardSize = 10

// LeaderboardHandler godoc
// @Summary      Public referral leaderboard
// @Description  Returns the top 10 signups by referral count. Ties rank the earlier signup first.
// @Tags         waitlist
// @Produce      json
// @Success      200 {array}  LeaderboardEntry "Leaderboard entries, descending"
// @Failure      400 {object} echo.HTTPError   "Query failure"
// @Router       /v1/waitlist/leaderboard [get]
func (h *WaitlistHandlers) LeaderboardHandler(c echo.Context) error {
	logger := c.Logger()

	var signups []models.Signup
	if err := h.DB.Order("referral_count DESC, created_at ASC").
		Limit(leaderboardSize).
		Find(&signups).Error; err != nil {
		logger.Errorf("Failed to fetch leaderboard: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Failed to fetch leaderboard",
		}
	}

	entries := make([]LeaderboardEntry, 0, len(signups))
	for i, signup := range signups {
		entries = append(entries, LeaderboardEntry{
			FullName:      signup.FullName,
			ReferralCode:  signup.ReferralCode,
			ReferralCount: signup.ReferralCount,
			Rank:          i + 1,
		})
	}

	return c.JSON(http.StatusOK, entries)
}
