package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/service"
)

type RelatedHandler struct {
	svc *service.AnalyzerService
}

func NewRelatedHandler(svc *service.AnalyzerService) *RelatedHandler {
	return &RelatedHandler{svc: svc}
}

// GetRelated handles GET /api/related/:videoId?count=10
func (h *RelatedHandler) GetRelated(c fiber.Ctx) error {
	videoID := c.Params("videoId")
	count := fiber.Query[int](c, "count", 10)

	related, err := h.svc.GetRelated(c.Context(), videoID, count)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"related": related,
	})
}
