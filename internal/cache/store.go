package cache

import (
	"context"
	"encoding/json"
	"log"
)

// Cache namespaces. Each upstream response class gets its own keyspace.
const (
	NSVideos         = "videos"
	NSChannels       = "channels"
	NSChannelDetails = "channel-details"
	NSChannelVideos  = "channel-videos"
	NSSearches       = "searches"
	NSRelated        = "related"
)

// Store is the durable key-value capability backing all API responses.
// Entries are permanent: nothing in this system expires or invalidates
// them. Implementations must make Put an atomic per-key upsert.
type Store interface {
	// Get returns the stored value for (namespace, key).
	// A miss is (nil, false, nil), never an error.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)

	// Put stores value under (namespace, key), overwriting any prior entry.
	Put(ctx context.Context, namespace, key string, value []byte) error

	// Close releases the backing resources.
	Close() error
}

// GetJSON decodes a cached entry into v. Store errors and undecodable
// entries are logged and treated as misses — the cache fails open.
func GetJSON(ctx context.Context, s Store, namespace, key string, v any) bool {
	data, ok, err := s.Get(ctx, namespace, key)
	if err != nil {
		log.Printf("cache: get %s/%s: %v", namespace, key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("cache: corrupt entry %s/%s, treating as miss: %v", namespace, key, err)
		return false
	}
	return true
}

// PutJSON encodes v and stores it. Failures are logged, not fatal: a write
// that does not stick only costs a future re-fetch.
func PutJSON(ctx context.Context, s Store, namespace, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache: marshal %s/%s: %v", namespace, key, err)
		return
	}
	if err := s.Put(ctx, namespace, key, data); err != nil {
		log.Printf("cache: put %s/%s: %v", namespace, key, err)
	}
}

// Open selects and opens a cache backend. It never fails: if the requested
// backend cannot be opened the store degrades to in-memory (non-durable)
// with a log line, so a broken cache file can never take the service down.
func Open(backend, path, redisURL string) Store {
	switch backend {
	case "redis":
		s, err := OpenRedis(redisURL)
		if err != nil {
			log.Printf("cache: redis unavailable, falling back to memory: %v", err)
			return NewMemory()
		}
		log.Println("cache: redis backend ready")
		return s
	case "memory":
		return NewMemory()
	default:
		s, err := OpenSQLite(path)
		if err != nil {
			log.Printf("cache: sqlite unavailable, falling back to memory: %v", err)
			return NewMemory()
		}
		log.Printf("cache: sqlite backend ready (%s)", path)
		return s
	}
}
