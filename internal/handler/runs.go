package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/repository"
)

type RunsHandler struct {
	runs *repository.RunRepo
}

func NewRunsHandler(runs *repository.RunRepo) *RunsHandler {
	return &RunsHandler{runs: runs}
}

// List handles GET /api/runs?limit=20 — recent analysis runs, newest first.
func (h *RunsHandler) List(c fiber.Ctx) error {
	if h.runs == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Run history is disabled")
	}

	limit := fiber.Query[int](c, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, err := h.runs.List(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to list runs")
	}

	return c.JSON(fiber.Map{"runs": runs})
}
