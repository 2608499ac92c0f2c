package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/fetcher"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/repository"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/youtube"
)

type StatsHandler struct {
	fetcher *fetcher.Fetcher
	client  *youtube.Client // nil when a fake/custom platform client is wired
	runs    *repository.RunRepo
}

func NewStatsHandler(f *fetcher.Fetcher, client *youtube.Client, runs *repository.RunRepo) *StatsHandler {
	return &StatsHandler{fetcher: f, client: client, runs: runs}
}

// GetStats handles GET /api/stats — quota usage, cache effectiveness and
// run-history counters.
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats := fiber.Map{
		"cache_hits":   h.fetcher.CacheHits(),
		"cache_misses": h.fetcher.CacheMisses(),
	}
	if h.client != nil {
		stats["quota_units_used"] = h.client.QuotaUsed()
	}

	if h.runs != nil {
		count, err := h.runs.Count(c.Context())
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to fetch statistics")
		}
		stats["total_runs"] = count
	}

	return c.JSON(stats)
}
