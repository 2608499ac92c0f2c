package handler

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/service"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/youtube"
)

type AnalyzeHandler struct {
	svc       *service.AnalyzerService
	seedsPath string
}

func NewAnalyzeHandler(svc *service.AnalyzerService, seedsPath string) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, seedsPath: seedsPath}
}

type analyzeRequest struct {
	URLs        []string `json:"urls"`
	MinDuration float64  `json:"min_duration_min"`
	MaxDuration float64  `json:"max_duration_min"`
}

// Analyze handles POST /api/analyze (urls in the body) and GET /api/analyze
// (urls read from the seeds file, one per line).
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var req analyzeRequest
	if c.Method() == fiber.MethodPost {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT", "Request body must be JSON with a urls array")
		}
	} else {
		urls, err := readSeeds(h.seedsPath)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT", "No seeds file available")
		}
		req.URLs = urls
	}

	window := service.DurationWindow{Min: req.MinDuration, Max: req.MaxDuration}
	result, err := h.svc.AnalyzeVideos(c.Context(), req.URLs, window)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Records,
		"niches":  result.Niches,
		"count":   result.Count,
	})
}

func readSeeds(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

// mapServiceError translates the failure taxonomy into distinct,
// user-actionable error payloads.
func mapServiceError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, youtube.ErrQuotaExceeded):
		return middleware.ErrorResponse(c, fiber.StatusTooManyRequests, "QUOTA_EXCEEDED",
			"Daily API quota exhausted — try again tomorrow")
	case errors.Is(err, service.ErrNoValidIDs):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT",
			"No valid video IDs found in the input")
	case errors.Is(err, service.ErrEmptyQuery):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT",
			"Search keyword must not be empty")
	case errors.Is(err, service.ErrNoResults):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"No videos matched the given filters")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Analysis failed")
	}
}
