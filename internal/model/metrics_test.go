package model

import (
	"testing"
	"time"
)

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.004, 1.0},
		{2.676, 2.68},
		{5.499999, 5.5},
		{100, 100},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(15.04); got != 15.0 {
		t.Errorf("Round1(15.04) = %v, want 15.0", got)
	}
	if got := Round1(15.05); got != 15.1 {
		t.Errorf("Round1(15.05) = %v, want 15.1", got)
	}
}

func TestResponse_RoundingAndDate(t *testing.T) {
	rec := MetricRecord{
		VideoID:          "abc123def45",
		Title:            "a video",
		DurationMin:      15.2533,
		UploadDate:       time.Date(2026, 6, 10, 14, 30, 0, 0, time.UTC),
		ViewVelocity:     33.3333,
		EngagementPct:    5.5566,
		CompetitionScore: 7.299,
	}

	resp := rec.Response()
	if resp.DurationMin != 15.3 {
		t.Errorf("duration = %v, want 15.3", resp.DurationMin)
	}
	if resp.UploadDate != "2026-06-10" {
		t.Errorf("upload date = %q, want 2026-06-10", resp.UploadDate)
	}
	if resp.ViewVelocity != 33.33 {
		t.Errorf("velocity = %v, want 33.33", resp.ViewVelocity)
	}
	if resp.EngagementPct != 5.56 {
		t.Errorf("engagement = %v, want 5.56", resp.EngagementPct)
	}
	if resp.CompetitionScore != 7.3 {
		t.Errorf("competition = %v, want 7.3", resp.CompetitionScore)
	}
}

func TestResponse_PotentialScoreOnlyInSearchMode(t *testing.T) {
	rec := MetricRecord{PotentialScore: 62.346}

	if resp := rec.Response(); resp.PotentialScore != nil {
		t.Error("potential score present outside search mode")
	}

	rec.SearchMode = true
	resp := rec.Response()
	if resp.PotentialScore == nil {
		t.Fatal("potential score missing in search mode")
	}
	if *resp.PotentialScore != 62.35 {
		t.Errorf("potential = %v, want 62.35", *resp.PotentialScore)
	}
}

func TestResponse_TagsNeverNull(t *testing.T) {
	resp := MetricRecord{}.Response()
	if resp.Tags == nil {
		t.Error("tags must serialize as [], not null")
	}
}
