package cache

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, NSVideos, "missing"); ok || err != nil {
		t.Fatalf("empty store Get = (ok=%v, err=%v), want clean miss", ok, err)
	}

	if err := s.Put(ctx, NSVideos, "k1", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, ok, err := s.Get(ctx, NSVideos, "k1")
	if err != nil || !ok || string(data) != "v1" {
		t.Fatalf("get = (%q, %v, %v), want (v1, true, nil)", data, ok, err)
	}

	// Overwrite is an upsert, not a duplicate.
	if err := s.Put(ctx, NSVideos, "k1", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, _, _ = s.Get(ctx, NSVideos, "k1")
	if string(data) != "v2" {
		t.Errorf("after overwrite got %q, want v2", data)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestMemoryStore_NamespacesIsolated(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, NSVideos, "same", []byte("video")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, NSChannels, "same", []byte("channel")); err != nil {
		t.Fatal(err)
	}

	data, _, _ := s.Get(ctx, NSVideos, "same")
	if string(data) != "video" {
		t.Errorf("videos/same = %q, want video", data)
	}
	data, _, _ = s.Get(ctx, NSChannels, "same")
	if string(data) != "channel" {
		t.Errorf("channels/same = %q, want channel", data)
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	buf := []byte("original")
	if err := s.Put(ctx, NSVideos, "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'

	data, _, _ := s.Get(ctx, NSVideos, "k")
	if string(data) != "original" {
		t.Errorf("caller mutation leaked into store: %q", data)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, NSSearches, "missing"); ok || err != nil {
		t.Fatalf("fresh db Get = (ok=%v, err=%v), want clean miss", ok, err)
	}

	if err := s.Put(ctx, NSSearches, "chess||10", []byte(`["a","b"]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, ok, err := s.Get(ctx, NSSearches, "chess||10")
	if err != nil || !ok || string(data) != `["a","b"]` {
		t.Fatalf("get = (%q, %v, %v)", data, ok, err)
	}

	if err := s.Put(ctx, NSSearches, "chess||10", []byte(`["c"]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	data, _, _ = s.Get(ctx, NSSearches, "chess||10")
	if string(data) != `["c"]` {
		t.Errorf("after upsert got %q, want [\"c\"]", data)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, NSVideos, "durable", []byte("yes")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	data, ok, err := s2.Get(ctx, NSVideos, "durable")
	if err != nil || !ok || string(data) != "yes" {
		t.Errorf("after reopen get = (%q, %v, %v), want (yes, true, nil)", data, ok, err)
	}
}

func TestGetJSON_CorruptEntryIsMiss(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, NSVideos, "bad", []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	var v map[string]string
	if GetJSON(ctx, s, NSVideos, "bad", &v) {
		t.Error("corrupt entry decoded as a hit, want fail-open miss")
	}
}

func TestPutJSON_GetJSON_RoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	PutJSON(ctx, s, NSChannels, "ch1", payload{Name: "chan", Count: 3})

	var got payload
	if !GetJSON(ctx, s, NSChannels, "ch1", &got) {
		t.Fatal("stored entry not found")
	}
	if got.Name != "chan" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestOpen_UnwritablePathFallsBackToMemory(t *testing.T) {
	// A path whose parent cannot be created degrades to the in-memory store
	// instead of failing.
	s := Open("sqlite", "/dev/null/nope/cache.db", "")
	defer s.Close()

	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("got %T, want fallback *MemoryStore", s)
	}
}

func TestOpen_MemoryBackend(t *testing.T) {
	s := Open("memory", "", "")
	defer s.Close()
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("got %T, want *MemoryStore", s)
	}
}
