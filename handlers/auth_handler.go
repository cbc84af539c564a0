// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"waitline-server/apperrors"
	"waitline-server/auth"

	"github.com/labstack/echo/v4"
)

// ExchangeMagicLinkHandler godoc
// @Summary      Exchange a magic link token
// @Description  Consumes a one-time magic link token and returns a session token for the dashboard.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        exchangeTokenRequest  body  ExchangeTokenRequest  true  "Magic link token payload"
// @Success      200 {object} AuthResponse   "Session token issued"
// @Failure      400 {object} echo.HTTPError "Invalid or already used token"
// @Failure      410 {object} echo.HTTPError "Token expired"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/waitlist/auth/exchange [post]
func (h *WaitlistHandlers) ExchangeMagicLinkHandler(c echo.Context) error {
	logger := c.Logger()

	var req ExchangeTokenRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid exchange request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Token == "" {
		logger.Error("Magic link token is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "token field is required",
		}
	}

	signup, err := h.Links.Exchange(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrLinkExpired):
			logger.Error("Magic link has expired.")
			return &echo.HTTPError{
				Code:    http.StatusGone,
				Message: "This link has expired. Sign up again with the same email to receive a new one.",
			}
		case errors.Is(err, auth.ErrLinkNotFound):
			logger.Error("Magic link not found or already used.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid or already used link",
			}
		default:
			logger.Errorf("Failed to exchange magic link: %v", err)
			return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
		}
	}

	sessionToken, err := h.Sessions.Sign(signup)
	if err != nil {
		logger.Errorf("Failed to sign session token: %v", err)
		return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
	}

	logger.Infof("Magic link exchanged successfully")
	return c.JSON(http.StatusOK, AuthResponse{
		SessionToken: sessionToken,
		Message:      "Link verified successfully",
	})
}
