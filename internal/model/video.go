package model

import "time"

// VideoRecord is the raw per-video payload fetched from the platform API.
// Records are immutable once cached; a re-fetch overwrites the cache entry
// wholesale.
type VideoRecord struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	UploadDate   time.Time `json:"upload_date"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
	Duration     string    `json:"duration"` // ISO-8601, e.g. "PT12M34S"
	Tags         []string  `json:"tags,omitempty"`
}

// RelatedVideo is the lightweight record returned by related-video lookups.
type RelatedVideo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
}
