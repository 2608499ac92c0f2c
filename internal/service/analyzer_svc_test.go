package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/cache"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/fetcher"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/youtube"
)

var testNow = time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

type fakeClient struct {
	videos    map[string]model.VideoRecord
	stats     map[string]model.ChannelStats
	searchIDs []string
	related   []model.RelatedVideo
	err       error
}

func (f *fakeClient) GetVideoDetails(_ context.Context, ids []string) ([]model.VideoRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.VideoRecord
	for _, id := range ids {
		if rec, ok := f.videos[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeClient) GetChannelStats(_ context.Context, ids []string) (map[string]model.ChannelStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]model.ChannelStats)
	for _, id := range ids {
		if s, ok := f.stats[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeClient) GetChannelDetails(context.Context, []string) (map[string]model.ChannelDetails, error) {
	return map[string]model.ChannelDetails{}, nil
}

func (f *fakeClient) ListChannelVideoIDs(context.Context, string, string, int) ([]string, string, error) {
	return nil, "", nil
}

func (f *fakeClient) SearchVideoIDs(_ context.Context, q youtube.SearchQuery) ([]string, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	n := len(f.searchIDs)
	if n > q.PageSize {
		n = q.PageSize
	}
	return f.searchIDs[:n], "", nil
}

func (f *fakeClient) RelatedVideos(context.Context, string, int) ([]model.RelatedVideo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.related, nil
}

func newService(fc *fakeClient) *AnalyzerService {
	svc := NewAnalyzerService(fetcher.New(fc, cache.NewMemory()), nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func twoVideoFake() *fakeClient {
	return &fakeClient{
		videos: map[string]model.VideoRecord{
			"abc123def45": {
				VideoID: "abc123def45", Title: "Train Your Dragon Fast",
				ChannelID: "ch1", ChannelTitle: "Channel One",
				UploadDate: testNow.AddDate(0, 0, -10),
				Views:      1000, Likes: 50, Comments: 5,
				Duration: "PT15M",
			},
			"xyz789ghi01": {
				VideoID: "xyz789ghi01", Title: "Dragon Training Basics",
				ChannelID: "ch2", ChannelTitle: "Channel Two",
				UploadDate: testNow.AddDate(0, 0, -5),
				Views:      500, Likes: 10, Comments: 2,
				Duration: "PT20M",
			},
		},
		stats: map[string]model.ChannelStats{
			"ch1": {SubscriberCount: 100_000, VideoCount: 200},
			"ch2": {SubscriberCount: 20_000, VideoCount: 80},
		},
		related: []model.RelatedVideo{
			{VideoID: "rel00000001", Title: "a related video", ChannelTitle: "Other"},
		},
	}
}

func TestAnalyzeVideos_NoValidIDs(t *testing.T) {
	svc := newService(&fakeClient{})

	_, err := svc.AnalyzeVideos(context.Background(),
		[]string{"not a url", "https://example.com/watch"}, DurationWindow{})
	if !errors.Is(err, ErrNoValidIDs) {
		t.Errorf("err = %v, want ErrNoValidIDs", err)
	}
}

func TestAnalyzeVideos_Pipeline(t *testing.T) {
	svc := newService(twoVideoFake())

	result, err := svc.AnalyzeVideos(context.Background(), []string{
		"https://www.youtube.com/watch?v=abc123def45",
		"xyz789ghi01",
	}, DurationWindow{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if result.Count != 2 || len(result.Records) != 2 {
		t.Fatalf("count = %d (%d records), want 2", result.Count, len(result.Records))
	}

	first := result.Records[0]
	if first.VideoID != "abc123def45" {
		t.Errorf("records[0] = %s, want abc123def45 (request order)", first.VideoID)
	}
	if first.ViewVelocity != 100.0 {
		t.Errorf("velocity = %.2f, want 100.00", first.ViewVelocity)
	}
	if first.EngagementPct != 5.5 {
		t.Errorf("engagement = %.2f, want 5.50", first.EngagementPct)
	}
	if first.UploadDate != "2026-06-10" {
		t.Errorf("upload date = %s, want 2026-06-10", first.UploadDate)
	}
	if first.MainKeyword != "train" || first.Niche != "train dragon" {
		t.Errorf("labels = (%s, %s), want (train, train dragon)", first.MainKeyword, first.Niche)
	}
	if first.PotentialScore != nil {
		t.Error("analyze mode must not include a potential score")
	}
	if len(first.RelatedVideos) != 1 {
		t.Errorf("related = %d entries, want 1", len(first.RelatedVideos))
	}

	if len(result.Niches) == 0 {
		t.Fatal("no niche aggregates")
	}
	if result.SearchParams != nil {
		t.Error("analyze result must not echo search params")
	}
}

func TestAnalyzeVideos_DurationWindowFilters(t *testing.T) {
	svc := newService(twoVideoFake())

	// Both videos (15 and 20 minutes) fall outside a 40–60 minute window.
	_, err := svc.AnalyzeVideos(context.Background(),
		[]string{"abc123def45", "xyz789ghi01"},
		DurationWindow{Min: 40, Max: 60})
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("err = %v, want ErrNoResults", err)
	}

	// A window covering only the shorter video keeps one record.
	result, err := svc.AnalyzeVideos(context.Background(),
		[]string{"abc123def45", "xyz789ghi01"},
		DurationWindow{Min: 10, Max: 16})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Count != 1 || result.Records[0].VideoID != "abc123def45" {
		t.Errorf("got %d records, want only the 15-minute video", result.Count)
	}
}

func TestAnalyzeVideos_QuotaSurfaces(t *testing.T) {
	svc := newService(&fakeClient{err: youtube.ErrQuotaExceeded})

	_, err := svc.AnalyzeVideos(context.Background(),
		[]string{"abc123def45"}, DurationWindow{})
	if !errors.Is(err, youtube.ErrQuotaExceeded) {
		t.Errorf("err = %v, want ErrQuotaExceeded", err)
	}
}

func TestSearchNiche_EmptyKeyword(t *testing.T) {
	svc := newService(&fakeClient{})

	if _, err := svc.SearchNiche(context.Background(), "   ", "", 10, DurationWindow{}); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchNiche_NoHits(t *testing.T) {
	svc := newService(&fakeClient{searchIDs: nil})

	_, err := svc.SearchNiche(context.Background(), "obscure", "", 10, DurationWindow{})
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("err = %v, want ErrNoResults", err)
	}
}

func TestSearchNiche_PotentialScoreAndParams(t *testing.T) {
	fc := twoVideoFake()
	fc.searchIDs = []string{"abc123def45", "xyz789ghi01"}
	svc := newService(fc)

	result, err := svc.SearchNiche(context.Background(), "dragon", "medium", 10, DurationWindow{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	for _, rec := range result.Records {
		if rec.PotentialScore == nil {
			t.Errorf("record %s missing potential score in search mode", rec.VideoID)
		}
	}

	p := result.SearchParams
	if p == nil {
		t.Fatal("search result must echo its parameters")
	}
	if p.Keyword != "dragon" || p.DurationBucket != "medium" {
		t.Errorf("params = %+v", p)
	}
	if p.MinDurationMin != 10 || p.MaxDurationMin != 30 {
		t.Errorf("window = [%.0f, %.0f], want default [10, 30]", p.MinDurationMin, p.MaxDurationMin)
	}
}

func TestGetRelated_InvalidID(t *testing.T) {
	svc := newService(&fakeClient{})

	if _, err := svc.GetRelated(context.Background(), "???", 5); !errors.Is(err, ErrNoValidIDs) {
		t.Errorf("err = %v, want ErrNoValidIDs", err)
	}
}

func TestGetRelated_AcceptsURL(t *testing.T) {
	fc := &fakeClient{related: []model.RelatedVideo{
		{VideoID: "rel00000001", Title: "t", ChannelTitle: "c"},
	}}
	svc := newService(fc)

	related, err := svc.GetRelated(context.Background(),
		"https://youtu.be/abc123def45", 5)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related) != 1 {
		t.Errorf("got %d related videos, want 1", len(related))
	}
}
