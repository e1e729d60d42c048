package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/clipgallery/clipgallery-go/internal/config"
	"github.com/clipgallery/clipgallery-go/internal/gallery"
	"github.com/clipgallery/clipgallery-go/internal/handler"
	"github.com/clipgallery/clipgallery-go/internal/middleware"
	"github.com/clipgallery/clipgallery-go/internal/router"
	"github.com/clipgallery/clipgallery-go/internal/source"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "clipgallery-gallery")
	handler.InitMetrics(nil)

	pageCache := gallery.NewPageCache(cfg.RedisURL)
	defer pageCache.Close()

	src := source.New(cfg.SourceURL, nil)
	fetcher := &gallery.InstrumentedFetcher{
		Inner:    src,
		Duration: handler.Metrics.SourceFetchDuration,
		Failures: handler.Metrics.SourceFetchFailures,
	}

	orch := gallery.NewOrchestrator(fetcher, gallery.StoreOptions{
		Shared:      pageCache,
		CacheHits:   handler.Metrics.PageCacheHits,
		CacheMisses: handler.Metrics.PageCacheMisses,
	})
	defer orch.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prefetch := gallery.NewPrefetchWorker(orch, cfg.PrefetchInterval)
	go prefetch.Start(ctx)
	defer prefetch.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "ClipGallery API",
		ServerHeader: "ClipGallery",
	})

	router.SetupGallery(app, &router.GalleryHandlers{
		Gallery: handler.NewGalleryHandler(orch, src),
		Health:  handler.NewGalleryHealthHandler(src, pageCache.Client()),
	}, cfg.CORSOrigins)

	log.Printf("gallery service starting on :%s (env=%s, source=%s)", cfg.Port, cfg.Environment, cfg.SourceURL)
	log.Fatal(app.Listen(":" + cfg.Port))
}
