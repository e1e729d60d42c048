package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/clipgallery/clipgallery-go/internal/config"
	"github.com/clipgallery/clipgallery-go/internal/db"
	"github.com/clipgallery/clipgallery-go/internal/handler"
	"github.com/clipgallery/clipgallery-go/internal/middleware"
	"github.com/clipgallery/clipgallery-go/internal/repository"
	"github.com/clipgallery/clipgallery-go/internal/router"
	"github.com/clipgallery/clipgallery-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "clipgallery-source")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	handler.InitMetrics(pool)

	catalogSvc := service.NewCatalogService(repository.NewVideoRepo(pool))

	app := fiber.New(fiber.Config{
		AppName:      "ClipGallery Source API",
		ServerHeader: "ClipGallery",
	})

	router.SetupSource(app, &router.SourceHandlers{
		Videos: handler.NewVideosHandler(catalogSvc),
		Stats:  handler.NewStatsHandler(catalogSvc),
		Health: handler.NewHealthHandler(pool, nil),
	}, cfg.CORSOrigins)

	log.Printf("source service starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
