package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TokenProvider supplies a valid access credential for upstream calls.
// Refresh semantics belong to the implementation; the aggregation core
// only ever asks for a currently-valid token.
type TokenProvider interface {
	GetValidAccessToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider for a fixed, non-expiring credential.
type StaticToken string

func (t StaticToken) GetValidAccessToken(ctx context.Context) (string, error) {
	if t == "" {
		return "", errors.New("no access token configured")
	}
	return string(t), nil
}

// expirySkew is subtracted from the stored expiry so a token is refreshed
// slightly before the upstream would start rejecting it.
const expirySkew = 30 * time.Second

// RefreshFunc obtains a fresh credential and its expiry time.
type RefreshFunc func(ctx context.Context) (token string, expiresAt time.Time, err error)

// CachedToken caches a short-lived credential and refreshes it through the
// supplied RefreshFunc once the expiry (minus skew) has passed. The object
// is owned by the caller of the aggregation core and passed in by
// reference; there is no process-global token state.
type CachedToken struct {
	mu        sync.Mutex
	refresh   RefreshFunc
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewCachedToken(refresh RefreshFunc) *CachedToken {
	return &CachedToken{refresh: refresh, now: time.Now}
}

func (c *CachedToken) GetValidAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-expirySkew)) {
		return c.token, nil
	}

	token, expiresAt, err := c.refresh(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = expiresAt
	return token, nil
}
