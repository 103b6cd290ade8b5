package handlers

import (
	"net/http"

	"coachcrm/internal/analytics"
	"coachcrm/internal/common"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the trainer dashboard summary.
type DashboardHandlers struct {
	analyticsService analytics.Service
}

func NewDashboardHandlers(analyticsService analytics.Service) *DashboardHandlers {
	return &DashboardHandlers{analyticsService: analyticsService}
}

// GetStats handles GET /v1/dashboard/stats
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	stats, err := h.analyticsService.GetTrainerStats(ctx, trainerID)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve stats: "+err.Error())
	}

	return c.JSON(http.StatusOK, stats)
}
