package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/auth"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/model"
)

// Quota costs charged by the upstream per call. Search-type calls are two
// orders of magnitude more expensive than id lookups.
const (
	CostList   = 1
	CostSearch = 100
)

// SearchQuery describes one page of a video search.
type SearchQuery struct {
	Query     string
	Duration  string // "short", "medium", "long" or "" (any)
	Order     string // "viewCount", "date", ...
	PageSize  int
	PageToken string
	RelatedTo string // related-video lookup instead of keyword search
}

// PlatformClient is the upstream capability the fetcher consumes.
type PlatformClient interface {
	GetVideoDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error)
	GetChannelStats(ctx context.Context, ids []string) (map[string]model.ChannelStats, error)
	GetChannelDetails(ctx context.Context, ids []string) (map[string]model.ChannelDetails, error)
	ListChannelVideoIDs(ctx context.Context, channelID, pageToken string, pageSize int) ([]string, string, error)
	SearchVideoIDs(ctx context.Context, q SearchQuery) ([]string, string, error)
	RelatedVideos(ctx context.Context, videoID string, maxResults int) ([]model.RelatedVideo, error)
}

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client talks to the YouTube Data API v3 over plain HTTP. Authentication
// is either a developer key (query parameter) or a bearer token from the
// externally-owned TokenProvider.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	tokens    auth.TokenProvider
	quotaUsed atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey authenticates requests with a developer key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTokenProvider authenticates requests with bearer tokens.
func WithTokenProvider(tp auth.TokenProvider) Option {
	return func(c *Client) { c.tokens = tp }
}

// WithBaseURL overrides the API endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QuotaUsed reports the quota units consumed since startup.
func (c *Client) QuotaUsed() int64 {
	return c.quotaUsed.Load()
}

// GetVideoDetails fetches snippet, statistics and contentDetails for up to
// 50 ids in one call. Ids the upstream cannot resolve are absent from the
// result, not errors.
func (c *Client) GetVideoDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", joinIDs(ids))

	var resp videoListResponse
	if err := c.get(ctx, "/videos", params, CostList, &resp); err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		uploaded, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			log.Printf("youtube: video %s has unparseable publishedAt %q, skipping", item.ID, item.Snippet.PublishedAt)
			continue
		}
		records = append(records, model.VideoRecord{
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelTitle: item.Snippet.ChannelTitle,
			UploadDate:   uploaded,
			Views:        parseCount(item.Statistics.ViewCount),
			Likes:        parseCount(item.Statistics.LikeCount),
			Comments:     parseCount(item.Statistics.CommentCount),
			Duration:     item.ContentDetails.Duration,
			Tags:         item.Snippet.Tags,
		})
	}
	return records, nil
}

// GetChannelStats fetches subscriber and upload counts for up to 50 ids.
func (c *Client) GetChannelStats(ctx context.Context, ids []string) (map[string]model.ChannelStats, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", joinIDs(ids))

	var resp channelListResponse
	if err := c.get(ctx, "/channels", params, CostList, &resp); err != nil {
		return nil, err
	}

	stats := make(map[string]model.ChannelStats, len(resp.Items))
	for _, item := range resp.Items {
		stats[item.ID] = model.ChannelStats{
			SubscriberCount: parseCount(item.Statistics.SubscriberCount),
			VideoCount:      parseCount(item.Statistics.VideoCount),
		}
	}
	return stats, nil
}

// GetChannelDetails fetches full channel records (snippet + statistics).
func (c *Client) GetChannelDetails(ctx context.Context, ids []string) (map[string]model.ChannelDetails, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", joinIDs(ids))

	var resp channelListResponse
	if err := c.get(ctx, "/channels", params, CostList, &resp); err != nil {
		return nil, err
	}

	details := make(map[string]model.ChannelDetails, len(resp.Items))
	for _, item := range resp.Items {
		created, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		details[item.ID] = model.ChannelDetails{
			ChannelID:       item.ID,
			Title:           item.Snippet.Title,
			CreatedAt:       created,
			SubscriberCount: parseCount(item.Statistics.SubscriberCount),
			VideoCount:      parseCount(item.Statistics.VideoCount),
			TotalViews:      parseCount(item.Statistics.ViewCount),
		}
	}
	return details, nil
}

// ListChannelVideoIDs returns one date-ordered page of a channel's uploads.
func (c *Client) ListChannelVideoIDs(ctx context.Context, channelID, pageToken string, pageSize int) ([]string, string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("type", "video")
	params.Set("channelId", channelID)
	params.Set("order", "date")
	params.Set("maxResults", strconv.Itoa(pageSize))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp searchListResponse
	if err := c.get(ctx, "/search", params, CostSearch, &resp); err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, resp.NextPageToken, nil
}

// SearchVideoIDs returns one page of a keyword (or related-video) search.
func (c *Client) SearchVideoIDs(ctx context.Context, q SearchQuery) ([]string, string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(q.PageSize))
	if q.RelatedTo != "" {
		params.Set("relatedToVideoId", q.RelatedTo)
	} else {
		params.Set("q", q.Query)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.Duration != "" {
		params.Set("videoDuration", q.Duration)
	}
	if q.PageToken != "" {
		params.Set("pageToken", q.PageToken)
	}

	var resp searchListResponse
	if err := c.get(ctx, "/search", params, CostSearch, &resp); err != nil {
		return nil, "", err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, resp.NextPageToken, nil
}

// RelatedVideos returns lightweight records for videos related to videoID.
func (c *Client) RelatedVideos(ctx context.Context, videoID string, maxResults int) ([]model.RelatedVideo, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("relatedToVideoId", videoID)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var resp searchListResponse
	if err := c.get(ctx, "/search", params, CostSearch, &resp); err != nil {
		return nil, err
	}

	related := make([]model.RelatedVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		related = append(related, model.RelatedVideo{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}
	return related, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, cost int64, out any) error {
	if c.tokens == nil {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.GetValidAccessToken(ctx)
		if err != nil {
			return fmt.Errorf("access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.quotaUsed.Add(cost)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return classifyAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
