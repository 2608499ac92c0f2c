package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/cache"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/youtube"
)

const (
	// The upstream accepts at most 50 ids per lookup call.
	maxBatchSize = 50
	// Hard ceiling on keyword search results regardless of caller input.
	searchHardCap = 100
)

// Fetcher resolves raw platform records, consulting the cache store before
// issuing upstream calls and writing new results back afterwards. All
// operations are sequential; a Fetcher performs no internal parallelism.
type Fetcher struct {
	client youtube.PlatformClient
	store  cache.Store

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

func New(client youtube.PlatformClient, store cache.Store) *Fetcher {
	return &Fetcher{client: client, store: store}
}

// CacheHits reports cache hits since startup.
func (f *Fetcher) CacheHits() int64 { return f.cacheHits.Load() }

// CacheMisses reports cache misses since startup.
func (f *Fetcher) CacheMisses() int64 { return f.cacheMisses.Load() }

// FetchVideoDetails returns one VideoRecord per resolvable id, in request
// order. Ids the upstream cannot resolve are dropped silently. A failed
// batch degrades to "no new data" for its ids; only quota exhaustion
// aborts the whole operation.
func (f *Fetcher) FetchVideoDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	ids = dedupe(ids)
	resolved := make(map[string]model.VideoRecord, len(ids))

	var uncached []string
	for _, id := range ids {
		var rec model.VideoRecord
		if cache.GetJSON(ctx, f.store, cache.NSVideos, id, &rec) {
			f.cacheHits.Add(1)
			resolved[id] = rec
		} else {
			f.cacheMisses.Add(1)
			uncached = append(uncached, id)
		}
	}

	for _, batch := range chunk(uncached, maxBatchSize) {
		records, err := f.client.GetVideoDetails(ctx, batch)
		if err != nil {
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				return nil, err
			}
			log.Printf("fetcher: video details batch failed, skipping %d ids: %v", len(batch), err)
			continue
		}
		for _, rec := range records {
			resolved[rec.VideoID] = rec
			cache.PutJSON(ctx, f.store, cache.NSVideos, rec.VideoID, rec)
		}
	}

	out := make([]model.VideoRecord, 0, len(resolved))
	for _, id := range ids {
		if rec, ok := resolved[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// FetchChannelStats returns subscriber and video counts per channel id.
// Channels the upstream cannot resolve are absent from the map.
func (f *Fetcher) FetchChannelStats(ctx context.Context, ids []string) (map[string]model.ChannelStats, error) {
	ids = dedupe(ids)
	stats := make(map[string]model.ChannelStats, len(ids))

	var uncached []string
	for _, id := range ids {
		var s model.ChannelStats
		if cache.GetJSON(ctx, f.store, cache.NSChannels, id, &s) {
			f.cacheHits.Add(1)
			stats[id] = s
		} else {
			f.cacheMisses.Add(1)
			uncached = append(uncached, id)
		}
	}

	for _, batch := range chunk(uncached, maxBatchSize) {
		fetched, err := f.client.GetChannelStats(ctx, batch)
		if err != nil {
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				return nil, err
			}
			log.Printf("fetcher: channel stats batch failed, skipping %d ids: %v", len(batch), err)
			continue
		}
		for id, s := range fetched {
			stats[id] = s
			cache.PutJSON(ctx, f.store, cache.NSChannels, id, s)
		}
	}
	return stats, nil
}

// FetchChannelDetails is FetchChannelStats plus creation date and lifetime
// views. Cache keys are per-channel, so a partial batch still benefits
// from cache on repeat calls.
func (f *Fetcher) FetchChannelDetails(ctx context.Context, ids []string) (map[string]model.ChannelDetails, error) {
	ids = dedupe(ids)
	details := make(map[string]model.ChannelDetails, len(ids))

	var uncached []string
	for _, id := range ids {
		var d model.ChannelDetails
		if cache.GetJSON(ctx, f.store, cache.NSChannelDetails, id, &d) {
			f.cacheHits.Add(1)
			details[id] = d
		} else {
			f.cacheMisses.Add(1)
			uncached = append(uncached, id)
		}
	}

	for _, batch := range chunk(uncached, maxBatchSize) {
		fetched, err := f.client.GetChannelDetails(ctx, batch)
		if err != nil {
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				return nil, err
			}
			log.Printf("fetcher: channel details batch failed, skipping %d ids: %v", len(batch), err)
			continue
		}
		for id, d := range fetched {
			details[id] = d
			cache.PutJSON(ctx, f.store, cache.NSChannelDetails, id, d)
		}
	}
	return details, nil
}

// ListChannelVideos collects up to maxCount video ids from a channel's
// date-ordered listing. The result is cached as a single unit keyed by
// (channel, maxCount): asking for a larger maxCount after a cached smaller
// result is a fresh miss, never a reuse of the smaller entry.
func (f *Fetcher) ListChannelVideos(ctx context.Context, channelID string, maxCount int) ([]string, error) {
	key := fmt.Sprintf("%s:%d", channelID, maxCount)

	var ids []string
	if cache.GetJSON(ctx, f.store, cache.NSChannelVideos, key, &ids) {
		f.cacheHits.Add(1)
		return ids, nil
	}
	f.cacheMisses.Add(1)

	pageToken := ""
	for len(ids) < maxCount {
		pageSize := maxCount - len(ids)
		if pageSize > maxBatchSize {
			pageSize = maxBatchSize
		}

		page, next, err := f.client.ListChannelVideoIDs(ctx, channelID, pageToken, pageSize)
		if err != nil {
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				return nil, err
			}
			// Partial enumeration: return what we have, uncached, so the
			// next attempt retries the upstream.
			log.Printf("fetcher: channel %s listing failed after %d ids: %v", channelID, len(ids), err)
			return ids, nil
		}

		ids = append(ids, page...)
		if next == "" || len(page) == 0 {
			break
		}
		pageToken = next
	}

	if len(ids) > maxCount {
		ids = ids[:maxCount]
	}
	cache.PutJSON(ctx, f.store, cache.NSChannelVideos, key, ids)
	return ids, nil
}

// SearchByKeyword collects up to maxResults video ids from a view-count-
// ordered keyword search. maxResults is capped at 100; each page costs a
// fixed high quota unit. Quota exhaustion propagates as ErrQuotaExceeded
// so callers can react distinctly from other upstream failures.
func (f *Fetcher) SearchByKeyword(ctx context.Context, keyword, durationBucket string, maxResults int) ([]string, error) {
	if maxResults <= 0 || maxResults > searchHardCap {
		maxResults = searchHardCap
	}
	key := fmt.Sprintf("%s|%s|%d", keyword, durationBucket, maxResults)

	var ids []string
	if cache.GetJSON(ctx, f.store, cache.NSSearches, key, &ids) {
		f.cacheHits.Add(1)
		return ids, nil
	}
	f.cacheMisses.Add(1)

	pageToken := ""
	for len(ids) < maxResults {
		pageSize := maxResults - len(ids)
		if pageSize > maxBatchSize {
			pageSize = maxBatchSize
		}

		page, next, err := f.client.SearchVideoIDs(ctx, youtube.SearchQuery{
			Query:     keyword,
			Duration:  durationBucket,
			Order:     "viewCount",
			PageSize:  pageSize,
			PageToken: pageToken,
		})
		if err != nil {
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				return nil, err
			}
			log.Printf("fetcher: search %q failed after %d ids: %v", keyword, len(ids), err)
			return ids, nil
		}

		ids = append(ids, page...)
		if next == "" || len(page) == 0 {
			break
		}
		pageToken = next
	}

	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	cache.PutJSON(ctx, f.store, cache.NSSearches, key, ids)
	return ids, nil
}

// FetchRelated returns lightweight records for videos related to videoID,
// cached by (video, count). Failures degrade to an empty list.
func (f *Fetcher) FetchRelated(ctx context.Context, videoID string, maxResults int) []model.RelatedVideo {
	key := fmt.Sprintf("related_%s_%d", videoID, maxResults)

	var related []model.RelatedVideo
	if cache.GetJSON(ctx, f.store, cache.NSRelated, key, &related) {
		f.cacheHits.Add(1)
		return related
	}
	f.cacheMisses.Add(1)

	related, err := f.client.RelatedVideos(ctx, videoID, maxResults)
	if err != nil {
		log.Printf("fetcher: related lookup for %s failed: %v", videoID, err)
		return []model.RelatedVideo{}
	}

	cache.PutJSON(ctx, f.store, cache.NSRelated, key, related)
	return related
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func chunk(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		batches = append(batches, ids)
	}
	return batches
}
