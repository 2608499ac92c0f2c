package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/repository"
)

type ExportHandler struct {
	runs *repository.RunRepo
}

func NewExportHandler(runs *repository.RunRepo) *ExportHandler {
	return &ExportHandler{runs: runs}
}

// Export handles GET /api/export — the latest run's records as CSV.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	if h.runs == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Run history is disabled — nothing to export")
	}

	run, err := h.runs.Latest(c.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
				"No analysis has been run yet")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to load the latest run")
	}

	body, err := recordsCSV(run.Records)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to build CSV")
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=youtube_analysis.csv")
	return c.Send(body)
}

func recordsCSV(records []model.MetricResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"video_id", "title", "channel", "channel_subs", "views", "likes",
		"comments", "duration_min", "upload_date", "days_since_upload",
		"view_velocity", "engagement_pct", "competition_score",
		"potential_score", "main_keyword", "niche", "tags",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range records {
		potential := ""
		if r.PotentialScore != nil {
			potential = fmt.Sprintf("%.2f", *r.PotentialScore)
		}
		row := []string{
			r.VideoID,
			r.Title,
			r.Channel,
			fmt.Sprintf("%d", r.ChannelSubs),
			fmt.Sprintf("%d", r.Views),
			fmt.Sprintf("%d", r.Likes),
			fmt.Sprintf("%d", r.Comments),
			fmt.Sprintf("%.1f", r.DurationMin),
			r.UploadDate,
			fmt.Sprintf("%d", r.DaysSinceUpload),
			fmt.Sprintf("%.2f", r.ViewVelocity),
			fmt.Sprintf("%.2f", r.EngagementPct),
			fmt.Sprintf("%.2f", r.CompetitionScore),
			potential,
			r.MainKeyword,
			r.Niche,
			strings.Join(r.Tags, "|"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
