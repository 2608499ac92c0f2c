package scoring

import (
	"math"
	"regexp"
	"time"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
)

var durationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO-8601 video duration (PT…H…M…S, any subset
// of fields) to minutes. Anything unparseable is 0.
func ParseDuration(s string) float64 {
	m := durationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours := parseGroup(m[1])
	minutes := parseGroup(m[2])
	seconds := parseGroup(m[3])
	return float64(hours)*60 + float64(minutes) + float64(seconds)/60
}

func parseGroup(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// DaysSinceUpload returns whole days between the publish timestamp and now,
// clamped to at least 1 so per-day rates never divide by zero. The
// subtraction is on absolute instants, so the publish timestamp's original
// zone offset is honored.
func DaysSinceUpload(uploadedAt, now time.Time) int {
	days := int(math.Floor(now.Sub(uploadedAt).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// CompetitionScore estimates how hard a channel is to compete against from
// its subscriber base, upload volume and the video's view velocity. The
// three weighted terms are summed uncapped, then clamped to [0, 100].
func CompetitionScore(subscribers, videoCount int64, viewVelocity float64) float64 {
	score := float64(subscribers)/1_000_000*40 +
		float64(videoCount)/1_000*30 +
		viewVelocity/10_000*30
	return math.Min(score, 100)
}

// Subscriber thresholds below which small channels get a potential boost.
const (
	boostSmallBelow = 10_000
	boostMidBelow   = 50_000
)

// PotentialScore estimates how much a video outperforms its channel's
// subscriber base. Small channels get a boost; the result is clamped to
// [0, 100] both before and after the boost.
func PotentialScore(views, subscribers int64) float64 {
	subs := subscribers
	if subs < 1 {
		subs = 1
	}
	ratio := math.Min(float64(views)/float64(subs)*100, 100)

	boost := 1.0
	switch {
	case subscribers < boostSmallBelow:
		boost = 1.5
	case subscribers < boostMidBelow:
		boost = 1.2
	}
	return math.Min(ratio*boost, 100)
}

// EngagementPct is (likes + comments) / views as a percentage, 0 when the
// video has no views.
func EngagementPct(views, likes, comments int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(likes+comments) / float64(views) * 100
}

// Compute derives the full metric set for each video. channelStats entries
// may be missing for a channel; the record then scores with 0 subscribers
// and a video count of 1, matching upstream gaps degrading to partial data.
// Potential scores are only computed in search mode.
func Compute(videos []model.VideoRecord, channelStats map[string]model.ChannelStats, now time.Time, searchMode bool) []model.MetricRecord {
	records := make([]model.MetricRecord, 0, len(videos))
	for _, v := range videos {
		stats, ok := channelStats[v.ChannelID]
		subs := stats.SubscriberCount
		videoCount := stats.VideoCount
		if !ok {
			subs = 0
			videoCount = 1
		}

		days := DaysSinceUpload(v.UploadDate, now)
		velocity := float64(v.Views) / float64(days)

		rec := model.MetricRecord{
			VideoID:          v.VideoID,
			Title:            v.Title,
			Channel:          v.ChannelTitle,
			ChannelID:        v.ChannelID,
			ChannelSubs:      subs,
			Views:            v.Views,
			Likes:            v.Likes,
			Comments:         v.Comments,
			DurationMin:      ParseDuration(v.Duration),
			UploadDate:       v.UploadDate,
			DaysSinceUpload:  days,
			ViewVelocity:     velocity,
			EngagementPct:    EngagementPct(v.Views, v.Likes, v.Comments),
			CompetitionScore: CompetitionScore(subs, videoCount, velocity),
			SearchMode:       searchMode,
			Tags:             v.Tags,
		}
		if searchMode {
			rec.PotentialScore = PotentialScore(v.Views, subs)
		}
		records = append(records, rec)
	}
	return records
}
