package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	CacheBackend  string // "sqlite" (default), "redis" or "memory"
	CachePath     string
	YouTubeAPIKey string
	SeedsPath     string
	LogLevel      string
	Environment   string
	CORSOrigins   string
}

func Load() *Config {
	// Best-effort .env load; real env vars win.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheBackend:  getEnv("CACHE_BACKEND", "sqlite"),
		CachePath:     getEnv("CACHE_PATH", "data/cache.db"),
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		SeedsPath:     getEnv("SEEDS_PATH", "seeds.txt"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
