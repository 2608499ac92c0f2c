package model

import (
	"math"
	"time"
)

// MetricRecord carries a video's raw fields plus the derived metrics.
// Float fields are kept unrounded so ranking and aggregation never depend
// on presentation rounding; MetricResponse rounds at the edge.
type MetricRecord struct {
	VideoID          string
	Title            string
	Channel          string
	ChannelID        string
	ChannelSubs      int64
	Views            int64
	Likes            int64
	Comments         int64
	DurationMin      float64
	UploadDate       time.Time
	DaysSinceUpload  int
	ViewVelocity     float64
	EngagementPct    float64
	CompetitionScore float64
	PotentialScore   float64 // populated in search mode only
	SearchMode       bool
	Tags             []string
	MainKeyword      string
	Niche            string
	Related          []RelatedVideo
}

// MetricResponse is the API representation of a MetricRecord with
// presentation rounding applied (2 decimals, 1 for duration).
type MetricResponse struct {
	VideoID          string         `json:"video_id"`
	Title            string         `json:"title"`
	Channel          string         `json:"channel"`
	ChannelSubs      int64          `json:"channel_subs"`
	Views            int64          `json:"views"`
	Likes            int64          `json:"likes"`
	Comments         int64          `json:"comments"`
	DurationMin      float64        `json:"duration_min"`
	UploadDate       string         `json:"upload_date"`
	DaysSinceUpload  int            `json:"days_since_upload"`
	ViewVelocity     float64        `json:"view_velocity"`
	EngagementPct    float64        `json:"engagement_pct"`
	CompetitionScore float64        `json:"competition_score"`
	PotentialScore   *float64       `json:"potential_score,omitempty"`
	Tags             []string       `json:"tags"`
	MainKeyword      string         `json:"main_keyword"`
	Niche            string         `json:"niche"`
	RelatedVideos    []RelatedVideo `json:"related_videos,omitempty"`
}

// Round2 rounds to 2 decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place (duration only).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Response builds the rounded API representation of the record.
func (m MetricRecord) Response() MetricResponse {
	resp := MetricResponse{
		VideoID:          m.VideoID,
		Title:            m.Title,
		Channel:          m.Channel,
		ChannelSubs:      m.ChannelSubs,
		Views:            m.Views,
		Likes:            m.Likes,
		Comments:         m.Comments,
		DurationMin:      Round1(m.DurationMin),
		UploadDate:       m.UploadDate.Format("2006-01-02"),
		DaysSinceUpload:  m.DaysSinceUpload,
		ViewVelocity:     Round2(m.ViewVelocity),
		EngagementPct:    Round2(m.EngagementPct),
		CompetitionScore: Round2(m.CompetitionScore),
		Tags:             m.Tags,
		MainKeyword:      m.MainKeyword,
		Niche:            m.Niche,
		RelatedVideos:    m.Related,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if m.SearchMode {
		p := Round2(m.PotentialScore)
		resp.PotentialScore = &p
	}
	return resp
}
