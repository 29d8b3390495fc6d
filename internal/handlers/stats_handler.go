package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shotstreak/shotstreak-backend/internal/authctx"
	"github.com/shotstreak/shotstreak-backend/internal/dto"
	"github.com/shotstreak/shotstreak-backend/internal/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStreak handles GET /stats/streak.
func (h *StatsHandler) GetStreak(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	streak, err := h.statsService.Streak(userID, services.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute streak",
		})
	}

	return c.JSON(dto.StreakResponse{Streak: streak})
}

// GetWeekly handles GET /stats/weekly.
func (h *StatsHandler) GetWeekly(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.statsService.Weekly(userID, services.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute weekly stats",
		})
	}

	return c.JSON(resp)
}

// GetSummary handles GET /stats/summary.
func (h *StatsHandler) GetSummary(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.statsService.Summary(userID, services.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute summary",
		})
	}

	return c.JSON(resp)
}
