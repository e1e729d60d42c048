package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clipgallery/clipgallery-go/internal/service"
)

type StatsHandler struct {
	svc *service.CatalogService
}

func NewStatsHandler(svc *service.CatalogService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /stats on the source service — catalog size per
// platform.
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	totals, err := h.svc.PlatformTotals(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch statistics",
			},
		})
	}

	return c.JSON(fiber.Map{"platforms": totals})
}
