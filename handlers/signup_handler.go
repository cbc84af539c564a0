// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"waitline-server/apperrors"
	"waitline-server/events"
	"waitline-server/models"
	"waitline-server/notifications"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SignupHandler godoc
// @Summary      Join the waitlist
// @Description  Creates a waitlist signup and emails a referral share link plus a one-time dashboard link. Submitting an email that is already on the waitlist re-sends the dashboard link instead of creating a duplicate.
// @Tags         waitlist
// @Accept       json
// @Produce      json
// @Param        signupRequest  body  SignupRequest  true  "Signup request payload"
// @Success      201 {object} GenericResponse    "Signup created"
// @Success      200 {object} GenericResponse    "Already on the waitlist, dashboard link re-sent"
// @Failure      400 {object} echo.HTTPError     "Missing or too-long field"
// @Failure      409 {object} echo.HTTPError     "Duplicate email"
// @Failure      415 {object} echo.HTTPError     "Unsupported content type"
// @Failure      422 {object} echo.HTTPError     "Invalid email format"
// @Failure      429 {object} echo.HTTPError     "Rate limit exceeded"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Failure      501 {object} echo.HTTPError     "Signed up, but email provider quota exceeded"
// @Failure      502 {object} echo.HTTPError     "Signed up, but confirmation email failed"
// @Failure      503 {object} echo.HTTPError     "Signed up, but dashboard link generation failed"
// @Router       /v1/waitlist/signup [post]
func (h *WaitlistHandlers) SignupHandler(c echo.Context) error {
	logger := c.Logger()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			logger.Error("Unsupported content type on signup request.")
			return he
		}
		logger.Error("Invalid signup request payload:", err)
		return echo.ErrBadRequest
	}

	if verr := validateSignupRequest(&req); verr != nil {
		logger.Error("Signup validation failed: ", verr)
		return verr.HTTP()
	}

	existing := models.Signup{}
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return h.returningSignup(c, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Errorf("Failed to check for existing signup: %v", err)
		return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
	}

	signup := models.Signup{
		FullName: req.FullName,
		Email:    req.Email,
	}
	if req.BrandName != "" {
		signup.BrandName = &req.BrandName
	}
	if req.Ref != "" {
		signup.ReferredBy = &req.Ref
	}

	if err := h.DB.Create(&signup).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent identical request
			logger.Error("Duplicate signup detected on insert.")
			return apperrors.New(apperrors.DuplicateEntry, "").HTTP()
		}
		logger.Errorf("Failed to create signup: %v", err)
		return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
	}

	h.creditReferrer(c, &signup)

	magicLink, err := h.Links.Generate(&signup)
	if err != nil {
		logger.Errorf("Failed to generate dashboard link: %v", err)
		return apperrors.New(apperrors.LinkGenerationFailed, "").HTTP()
	}

	if err := h.Mailer.Send(notifications.NotificationData{
		To:       signup.Email,
		ToName:   &signup.FullName,
		Subject:  "You're on the Waitline waitlist",
		Template: "welcome",
		Variables: map[string]any{
			"full_name":    signup.FullName,
			"product_name": "Waitline",
			"share_link":   h.shareLink(signup.ReferralCode),
			"magic_link":   magicLink,
		},
	}); err != nil {
		logger.Errorf("Failed to send welcome email: %v", err)
		if errors.Is(err, notifications.ErrQuotaExceeded) {
			return apperrors.New(apperrors.EmailQuotaExceeded, "").HTTP()
		}
		return apperrors.New(apperrors.EmailSendFailed, "").HTTP()
	}

	h.recordStat(models.StatsTypeSignup)
	h.Events.Publish(events.TypeSignup, signup.ReferralCode)

	logger.Infof("New waitlist signup created")
	return c.JSON(http.StatusCreated, GenericResponse{
		Message: "You're on the waitlist! Check your email for your referral link.",
	})
}

// returningSignup handles a repeat signup for an email already on the
// waitlist: nothing is created or incremented, a fresh dashboard link is
// emailed instead.
func (h *WaitlistHandlers) returningSignup(c echo.Context, signup *models.Signup) error {
	logger := c.Logger()

	magicLink, err := h.Links.Generate(signup)
	if err != nil {
		logger.Errorf("Failed to generate dashboard link for returning signup: %v", err)
		return apperrors.New(apperrors.LinkGenerationFailed,
			"You're already on the waitlist, but we couldn't generate your dashboard link. Please try again later.").HTTP()
	}

	if err := h.Mailer.Send(notifications.NotificationData{
		To:       signup.Email,
		ToName:   &signup.FullName,
		Subject:  "Your Waitline dashboard link",
		Template: "dashboard_link",
		Variables: map[string]any{
			"full_name":    signup.FullName,
			"product_name": "Waitline",
			"share_link":   h.shareLink(signup.ReferralCode),
			"magic_link":   magicLink,
		},
	}); err != nil {
		logger.Errorf("Failed to send dashboard link email: %v", err)
		if errors.Is(err, notifications.ErrQuotaExceeded) {
			return apperrors.New(apperrors.EmailQuotaExceeded,
				"You're already on the waitlist, but our email service is at capacity. Please try again later.").HTTP()
		}
		return apperrors.New(apperrors.EmailSendFailed,
			"You're already on the waitlist, but we couldn't send your dashboard link. Please try again later.").HTTP()
	}

	logger.Infof("Dashboard link re-sent to returning signup")
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "You're already on the waitlist. A fresh dashboard link has been sent to your email.",
	})
}

// creditReferrer bumps the referrer's count by one with a single atomic
// update; a missing code or store failure is logged and swallowed, it
// must never fail the signup that carried the code.
func (h *WaitlistHandlers) creditReferrer(c echo.Context, signup *models.Signup) {
	if signup.ReferredBy == nil {
		return
	}
	logger := c.Logger()

	res := h.DB.Model(&models.Signup{}).
		Where("referral_code = ?", *signup.ReferredBy).
		UpdateColumn("referral_count", gorm.Expr("referral_count + ?", 1))
	if res.Error != nil {
		logger.Errorf("Failed to credit referrer %s: %v", *signup.ReferredBy, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		logger.Warnf("Referral code %s does not match any signup, skipping credit", *signup.ReferredBy)
		return
	}

	h.recordStat(models.StatsTypeReferral)
	h.Events.Publish(events.TypeReferral, *signup.ReferredBy)
}
