// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"time"
	"waitline-server/apperrors"
	"waitline-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const maxRecentReferrals = 50

// DashboardHandler godoc
// @Summary      Personal referral dashboard
// @Description  Returns the authenticated signup's profile plus the most recent signups that used its referral code.
// @Tags         waitlist
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} DashboardResponse "Dashboard resolved"
// @Failure      401 {object} echo.HTTPError    "Missing or invalid token"
// @Failure      404 {object} echo.HTTPError    "Profile not found"
// @Failure      500 {object} echo.HTTPError    "Internal server error"
// @Router       /v1/waitlist/dashboard [get]
func (h *WaitlistHandlers) DashboardHandler(c echo.Context) error {
	logger := c.Logger()

	email, ok := c.Get("auth_email").(string)
	if !ok || email == "" {
		logger.Error("No authenticated email on dashboard request.")
		return apperrors.New(apperrors.Unauthorized, "").HTTP()
	}

	profile := models.Signup{}
	if err := h.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Authenticated email has no waitlist profile.")
			return apperrors.New(apperrors.NotFound, "Profile not found").HTTP()
		}
		logger.Errorf("Failed to resolve profile: %v", err)
		return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
	}

	var referred []models.Signup
	if err := h.DB.Where("referred_by = ?", profile.ReferralCode).
		Order("created_at DESC").
		Limit(maxRecentReferrals).
		Find(&referred).Error; err != nil {
		logger.Errorf("Failed to fetch referrals: %v", err)
		return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
	}

	recentReferrals := make([]ReferralDetails, 0, len(referred))
	for _, r := range referred {
		recentReferrals = append(recentReferrals, ReferralDetails{
			Name:   r.FullName,
			Brand:  r.BrandName,
			Email:  r.Email,
			Joined: r.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Success: true,
		Profile: ProfileDetails{
			Name:      profile.FullName,
			Brand:     profile.BrandName,
			Code:      profile.ReferralCode,
			Referrals: profile.ReferralCount,
			Joined:    profile.CreatedAt.Format(time.RFC3339),
			ShareLink: h.shareLink(profile.ReferralCode),
		},
		RecentReferrals: recentReferrals,
	})
}
