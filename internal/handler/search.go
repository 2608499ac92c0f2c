package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/service"
)

type SearchHandler struct {
	svc *service.AnalyzerService
}

func NewSearchHandler(svc *service.AnalyzerService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /api/search?q=...&duration=medium&max=50
func (h *SearchHandler) Search(c fiber.Ctx) error {
	keyword := fiber.Query[string](c, "q")
	if keyword == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_PARAM",
			"q query parameter is required")
	}

	durationBucket := fiber.Query[string](c, "duration")
	switch durationBucket {
	case "", "any", "short", "medium", "long":
	default:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT",
			"duration must be one of short, medium, long, any")
	}
	if durationBucket == "any" {
		durationBucket = ""
	}

	maxResults := fiber.Query[int](c, "max", 50)
	window := service.DurationWindow{
		Min: fiber.Query[float64](c, "min_duration_min"),
		Max: fiber.Query[float64](c, "max_duration_min"),
	}

	result, err := h.svc.SearchNiche(c.Context(), keyword, durationBucket, maxResults, window)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          result.Records,
		"niches":        result.Niches,
		"count":         result.Count,
		"search_params": result.SearchParams,
	})
}
