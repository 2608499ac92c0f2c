package niche

import (
	"sort"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
)

const (
	topVideosPerChannel = 5
	topCompetitors      = 10
)

// VideoSample is one entry in a channel's top-viewed sample.
type VideoSample struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Views   int64  `json:"views"`
}

// ChannelAggregate accumulates one channel's videos within a niche.
type ChannelAggregate struct {
	Channel          string        `json:"channel"`
	ChannelID        string        `json:"channel_id"`
	VideoCount       int           `json:"video_count"`
	TotalViews       int64         `json:"total_views"`
	AvgEngagement    float64       `json:"avg_engagement"`
	CompetitionScore float64       `json:"competition_score"`
	TopVideos        []VideoSample `json:"top_videos"`

	totalEngagement float64
}

// NicheAggregate summarizes one niche: its channels, unweighted channel
// averages, and the top competitor ranking.
type NicheAggregate struct {
	Niche          string             `json:"niche"`
	VideoCount     int                `json:"video_count"`
	ChannelCount   int                `json:"channel_count"`
	AvgEngagement  float64            `json:"avg_engagement"`
	AvgCompetition float64            `json:"avg_competition"`
	TopCompetitors []ChannelAggregate `json:"top_competitors"`
}

// Aggregate groups metric-bearing videos by niche label, accumulates
// per-channel statistics, and ranks competitors.
//
// Niche-level averages are unweighted means over the niche's distinct
// channels, so a channel with many videos does not dominate. Competitors
// rank by engagement descending, then competition score ascending (among
// equally engaging channels the easier one to beat ranks first). The niche
// list itself sorts highest engagement first, lowest competition as
// tiebreak. All ordering uses unrounded values; rounding is applied to the
// output fields afterwards.
func Aggregate(records []model.MetricRecord) []NicheAggregate {
	type nicheAcc struct {
		videoCount   int
		channelOrder []string
		channels     map[string]*ChannelAggregate
		videos       map[string][]VideoSample
	}

	var nicheOrder []string
	niches := make(map[string]*nicheAcc)

	for _, rec := range records {
		acc, ok := niches[rec.Niche]
		if !ok {
			acc = &nicheAcc{
				channels: make(map[string]*ChannelAggregate),
				videos:   make(map[string][]VideoSample),
			}
			niches[rec.Niche] = acc
			nicheOrder = append(nicheOrder, rec.Niche)
		}
		acc.videoCount++

		ch, ok := acc.channels[rec.ChannelID]
		if !ok {
			ch = &ChannelAggregate{Channel: rec.Channel, ChannelID: rec.ChannelID}
			acc.channels[rec.ChannelID] = ch
			acc.channelOrder = append(acc.channelOrder, rec.ChannelID)
		}
		ch.VideoCount++
		ch.TotalViews += rec.Views
		ch.totalEngagement += rec.EngagementPct
		// Last-seen score wins when a channel appears multiple times.
		ch.CompetitionScore = rec.CompetitionScore

		acc.videos[rec.ChannelID] = append(acc.videos[rec.ChannelID], VideoSample{
			VideoID: rec.VideoID,
			Title:   rec.Title,
			Views:   rec.Views,
		})
	}

	out := make([]NicheAggregate, 0, len(nicheOrder))
	for _, label := range nicheOrder {
		acc := niches[label]

		channels := make([]ChannelAggregate, 0, len(acc.channelOrder))
		var engagementSum, competitionSum float64
		for _, channelID := range acc.channelOrder {
			ch := *acc.channels[channelID]
			ch.AvgEngagement = ch.totalEngagement / float64(ch.VideoCount)

			samples := acc.videos[channelID]
			sort.SliceStable(samples, func(i, j int) bool {
				return samples[i].Views > samples[j].Views
			})
			if len(samples) > topVideosPerChannel {
				samples = samples[:topVideosPerChannel]
			}
			ch.TopVideos = samples

			engagementSum += ch.AvgEngagement
			competitionSum += ch.CompetitionScore
			channels = append(channels, ch)
		}

		sort.SliceStable(channels, func(i, j int) bool {
			if channels[i].AvgEngagement != channels[j].AvgEngagement {
				return channels[i].AvgEngagement > channels[j].AvgEngagement
			}
			return channels[i].CompetitionScore < channels[j].CompetitionScore
		})
		ranked := channels
		if len(ranked) > topCompetitors {
			ranked = ranked[:topCompetitors]
		}

		n := float64(len(acc.channelOrder))
		out = append(out, NicheAggregate{
			Niche:          label,
			VideoCount:     acc.videoCount,
			ChannelCount:   len(acc.channelOrder),
			AvgEngagement:  engagementSum / n,
			AvgCompetition: competitionSum / n,
			TopCompetitors: ranked,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgEngagement != out[j].AvgEngagement {
			return out[i].AvgEngagement > out[j].AvgEngagement
		}
		return out[i].AvgCompetition < out[j].AvgCompetition
	})

	// Presentation rounding, after all ordering is settled.
	for i := range out {
		out[i].AvgEngagement = model.Round2(out[i].AvgEngagement)
		out[i].AvgCompetition = model.Round2(out[i].AvgCompetition)
		for j := range out[i].TopCompetitors {
			c := &out[i].TopCompetitors[j]
			c.AvgEngagement = model.Round2(c.AvgEngagement)
			c.CompetitionScore = model.Round2(c.CompetitionScore)
		}
	}
	return out
}
