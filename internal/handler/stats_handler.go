package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/service"
)

// StatsHandler serves the admin dashboard aggregate.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard handles GET /v1/admin/stats
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.statsService.GetDashboardStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(stats)
}
