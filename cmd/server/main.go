package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/cache"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/config"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/db"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/fetcher"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/handler"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/repository"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/router"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/service"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "nichepro")

	ctx := context.Background()

	store := cache.Open(cfg.CacheBackend, cfg.CachePath, cfg.RedisURL)
	defer store.Close()

	if cfg.YouTubeAPIKey == "" {
		log.Println("warning: YOUTUBE_API_KEY is not set; upstream calls will fail")
	}
	client := youtube.NewClient(youtube.WithAPIKey(cfg.YouTubeAPIKey))
	f := fetcher.New(client, store)

	// Run history is optional: without a database the analyzer still works,
	// it just records nothing.
	var runs *repository.RunRepo
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("database unavailable, run history disabled: %v", err)
		} else {
			defer pool.Close()
			runs = repository.NewRunRepo(pool)
			if err := runs.Init(ctx); err != nil {
				log.Printf("runs: schema init failed, history disabled: %v", err)
				runs = nil
			}
		}
	}

	svc := service.NewAnalyzerService(f, runs)

	handler.InitMetrics(client, f)

	app := fiber.New(fiber.Config{
		AppName:      "YoutubeNichePro API",
		ServerHeader: "NichePro",
	})

	h := &router.Handlers{
		Analyze: handler.NewAnalyzeHandler(svc, cfg.SeedsPath),
		Search:  handler.NewSearchHandler(svc),
		Related: handler.NewRelatedHandler(svc),
		Export:  handler.NewExportHandler(runs),
		Runs:    handler.NewRunsHandler(runs),
		Stats:   handler.NewStatsHandler(f, client, runs),
		Health:  handler.NewHealthHandler(pool, store),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("YoutubeNichePro backend starting on :%s (env=%s, cache=%s)",
		cfg.Port, cfg.Environment, cfg.CacheBackend)
	log.Fatal(app.Listen(":" + cfg.Port))
}
