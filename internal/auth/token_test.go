package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCachedToken_RefreshesOnFirstUse(t *testing.T) {
	calls := 0
	ct := NewCachedToken(func(ctx context.Context) (string, time.Time, error) {
		calls++
		return "tok-1", time.Now().Add(time.Hour), nil
	})

	tok, err := ct.GetValidAccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("token = %q, want tok-1", tok)
	}
	if calls != 1 {
		t.Errorf("refresh calls = %d, want 1", calls)
	}
}

func TestCachedToken_ReusesUnexpiredToken(t *testing.T) {
	calls := 0
	ct := NewCachedToken(func(ctx context.Context) (string, time.Time, error) {
		calls++
		return "tok-1", time.Now().Add(time.Hour), nil
	})

	for i := 0; i < 3; i++ {
		if _, err := ct.GetValidAccessToken(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("refresh calls = %d, want 1 (token still valid)", calls)
	}
}

func TestCachedToken_RefreshesPastExpiry(t *testing.T) {
	calls := 0
	ct := NewCachedToken(func(ctx context.Context) (string, time.Time, error) {
		calls++
		// Expiry already inside the skew window — next call must refresh.
		return "tok", time.Now().Add(10 * time.Second), nil
	})

	ct.GetValidAccessToken(context.Background())
	ct.GetValidAccessToken(context.Background())

	if calls != 2 {
		t.Errorf("refresh calls = %d, want 2 (expiry within skew)", calls)
	}
}

func TestCachedToken_RefreshErrorPropagates(t *testing.T) {
	wantErr := errors.New("refresh failed")
	ct := NewCachedToken(func(ctx context.Context) (string, time.Time, error) {
		return "", time.Time{}, wantErr
	})

	_, err := ct.GetValidAccessToken(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestStaticToken_Empty(t *testing.T) {
	_, err := StaticToken("").GetValidAccessToken(context.Background())
	if err == nil {
		t.Error("expected error for empty static token")
	}
}
