// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"waitline-server/apperrors"
	"waitline-server/models"

	"github.com/labstack/echo/v4"
)

// StatsHandler godoc
// @Summary      Public waitlist stats
// @Description  Returns the total number of waitlist signups.
// @Tags         waitlist
// @Produce      json
// @Success      200 {object} StatsResponse  "Signup count"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/waitlist/stats [get]
func (h *WaitlistHandlers) StatsHandler(c echo.Context) error {
	logger := c.Logger()

	var count int64
	if err := h.DB.Model(&models.Signup{}).Count(&count).Error; err != nil {
		logger.Errorf("Failed to count signups: %v", err)
		return apperrors.Wrap(apperrors.Internal, "", err).HTTP()
	}

	return c.JSON(http.StatusOK, StatsResponse{Signups: count})
}
