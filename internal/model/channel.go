package model

import "time"

// ChannelStats holds the two counters the metric engine needs per channel.
type ChannelStats struct {
	SubscriberCount int64 `json:"subscriber_count"`
	VideoCount      int64 `json:"video_count"`
}

// ChannelDetails extends ChannelStats with identity, creation date and
// lifetime view count.
type ChannelDetails struct {
	ChannelID       string    `json:"channel_id"`
	Title           string    `json:"title"`
	CreatedAt       time.Time `json:"created_at"`
	SubscriberCount int64     `json:"subscriber_count"`
	VideoCount      int64     `json:"video_count"`
	TotalViews      int64     `json:"total_views"`
}
