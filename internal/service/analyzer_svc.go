package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/fetcher"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/keywords"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/niche"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/repository"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/scoring"
	"github.com/Anthonytesla02/YoutubeNichePro/pkg/videoid"
)

// relatedPerVideo is how many related videos enrich each analyze result.
const relatedPerVideo = 5

// DurationWindow filters results to videos within [Min, Max] minutes.
type DurationWindow struct {
	Min float64
	Max float64
}

// DefaultWindow is the 10–30 minute band the analyzer targets by default.
func DefaultWindow() DurationWindow {
	return DurationWindow{Min: 10, Max: 30}
}

func (w DurationWindow) normalize() DurationWindow {
	if w.Min == 0 && w.Max == 0 {
		return DefaultWindow()
	}
	if w.Max <= 0 {
		w.Max = DefaultWindow().Max
	}
	return w
}

func (w DurationWindow) contains(minutes float64) bool {
	return minutes >= w.Min && minutes <= w.Max
}

// SearchParams echoes the effective parameters of a niche search.
type SearchParams struct {
	Keyword        string  `json:"keyword"`
	DurationBucket string  `json:"duration_bucket,omitempty"`
	MaxResults     int     `json:"max_results"`
	MinDurationMin float64 `json:"min_duration_min"`
	MaxDurationMin float64 `json:"max_duration_min"`
}

// AnalysisResult is the caller-facing output of an analysis or search run.
type AnalysisResult struct {
	Records      []model.MetricResponse `json:"data"`
	Niches       []niche.NicheAggregate `json:"niches"`
	Count        int                    `json:"count"`
	SearchParams *SearchParams          `json:"search_params,omitempty"`
}

// AnalyzerService orchestrates the pipeline: resolve ids, fetch raw
// records through the cache, derive metrics, assign niches, aggregate
// competitors. A mutex serializes cache-mutating operations — the store's
// read-modify-write cycle assumes a single logical writer.
type AnalyzerService struct {
	fetcher *fetcher.Fetcher
	runs    *repository.RunRepo // nil when run history is disabled
	now     func() time.Time

	mu sync.Mutex
}

func NewAnalyzerService(f *fetcher.Fetcher, runs *repository.RunRepo) *AnalyzerService {
	return &AnalyzerService{fetcher: f, runs: runs, now: time.Now}
}

// AnalyzeVideos resolves the given video URLs or ids and returns derived
// metrics plus niche aggregates for everything inside the duration window.
func (s *AnalyzerService) AnalyzeVideos(ctx context.Context, urls []string, window DurationWindow) (*AnalysisResult, error) {
	ids := videoid.ExtractAll(urls)
	if len(ids) == 0 {
		return nil, ErrNoValidIDs
	}
	window = window.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.fetcher.FetchVideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	records, err := s.deriveAndCluster(ctx, videos, window, false)
	if err != nil {
		return nil, err
	}

	// Related-video enrichment, one lookup per surviving record.
	for i := range records {
		records[i].Related = s.fetcher.FetchRelated(ctx, records[i].VideoID, relatedPerVideo)
	}

	result := buildResult(records)
	s.recordRun(ctx, repository.RunKindAnalyze, strings.Join(ids, ","), result)
	return result, nil
}

// SearchNiche runs a keyword search and analyzes the hits in search mode
// (potential scores included), echoing the effective search parameters.
func (s *AnalyzerService) SearchNiche(ctx context.Context, keyword, durationBucket string, maxResults int, window DurationWindow) (*AnalysisResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyQuery
	}
	window = window.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.fetcher.SearchByKeyword(ctx, keyword, durationBucket, maxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoResults
	}

	videos, err := s.fetcher.FetchVideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	records, err := s.deriveAndCluster(ctx, videos, window, true)
	if err != nil {
		return nil, err
	}

	result := buildResult(records)
	result.SearchParams = &SearchParams{
		Keyword:        keyword,
		DurationBucket: durationBucket,
		MaxResults:     len(ids),
		MinDurationMin: window.Min,
		MaxDurationMin: window.Max,
	}
	s.recordRun(ctx, repository.RunKindSearch, keyword, result)
	return result, nil
}

// GetRelated returns lightweight related-video records for one video.
func (s *AnalyzerService) GetRelated(ctx context.Context, rawID string, count int) ([]model.RelatedVideo, error) {
	id, ok := videoid.Extract(rawID)
	if !ok {
		return nil, ErrNoValidIDs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetcher.FetchRelated(ctx, id, count), nil
}

// deriveAndCluster runs the metric engine, the duration filter and the
// keyword-based niche assignment. Must be called with s.mu held.
func (s *AnalyzerService) deriveAndCluster(ctx context.Context, videos []model.VideoRecord, window DurationWindow, searchMode bool) ([]model.MetricRecord, error) {
	if len(videos) == 0 {
		return nil, ErrNoResults
	}

	channelIDs := make([]string, 0, len(videos))
	seen := make(map[string]struct{})
	for _, v := range videos {
		if _, ok := seen[v.ChannelID]; !ok {
			seen[v.ChannelID] = struct{}{}
			channelIDs = append(channelIDs, v.ChannelID)
		}
	}

	stats, err := s.fetcher.FetchChannelStats(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	records := scoring.Compute(videos, stats, s.now(), searchMode)

	filtered := records[:0]
	for _, rec := range records {
		if window.contains(rec.DurationMin) {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrNoResults
	}

	for i := range filtered {
		filtered[i].MainKeyword, filtered[i].Niche = keywords.Labels(filtered[i].Title)
	}
	return filtered, nil
}

func buildResult(records []model.MetricRecord) *AnalysisResult {
	responses := make([]model.MetricResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.Response())
	}
	return &AnalysisResult{
		Records: responses,
		Niches:  niche.Aggregate(records),
		Count:   len(responses),
	}
}

// recordRun persists the run to history; failures are logged, never fatal.
func (s *AnalyzerService) recordRun(ctx context.Context, kind, query string, result *AnalysisResult) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Insert(ctx, kind, query, result.Records, result.Niches); err != nil {
		log.Printf("runs: failed to record %s run: %v", kind, err)
	}
}
