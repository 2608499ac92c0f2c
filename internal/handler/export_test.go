package handler

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
)

func TestRecordsCSV(t *testing.T) {
	potential := 62.35
	records := []model.MetricResponse{
		{
			VideoID:          "abc123def45",
			Title:            `quoted "title", with comma`,
			Channel:          "Channel One",
			ChannelSubs:      100_000,
			Views:            1000,
			Likes:            50,
			Comments:         5,
			DurationMin:      15.0,
			UploadDate:       "2026-06-10",
			DaysSinceUpload:  10,
			ViewVelocity:     100.0,
			EngagementPct:    5.5,
			CompetitionScore: 7.3,
			PotentialScore:   &potential,
			Tags:             []string{"one", "two"},
			MainKeyword:      "train",
			Niche:            "train dragon",
		},
		{
			VideoID:    "xyz789ghi01",
			Title:      "plain",
			Channel:    "Channel Two",
			UploadDate: "2026-06-15",
			Tags:       []string{},
		},
	}

	body, err := recordsCSV(records)
	if err != nil {
		t.Fatalf("recordsCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	header := rows[0]
	if len(header) != 17 || header[0] != "video_id" || header[16] != "tags" {
		t.Errorf("header = %v", header)
	}

	first := rows[1]
	if first[1] != `quoted "title", with comma` {
		t.Errorf("title not round-tripped: %q", first[1])
	}
	if first[10] != "100.00" || first[11] != "5.50" {
		t.Errorf("velocity/engagement = %q/%q, want 100.00/5.50", first[10], first[11])
	}
	if first[13] != "62.35" {
		t.Errorf("potential = %q, want 62.35", first[13])
	}
	if first[16] != "one|two" {
		t.Errorf("tags = %q, want one|two", first[16])
	}

	// Record without a potential score leaves the column empty.
	if rows[2][13] != "" {
		t.Errorf("potential for analyze-mode record = %q, want empty", rows[2][13])
	}
}

func TestRecordsCSV_Empty(t *testing.T) {
	body, err := recordsCSV(nil)
	if err != nil {
		t.Fatalf("recordsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export has %d lines, want header only", len(lines))
	}
}
