package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/clipgallery/clipgallery-go/internal/handler"
	"github.com/clipgallery/clipgallery-go/internal/middleware"
)

// GalleryHandlers holds all handler instances needed by the gallery router.
type GalleryHandlers struct {
	Gallery *handler.GalleryHandler
	Health  *handler.GalleryHealthHandler
}

// SetupGallery configures the middleware stack and all routes of the gallery
// service.
func SetupGallery(app *fiber.App, h *GalleryHandlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	galleryLimit := middleware.NewGalleryRateLimiter().Handler()
	refreshLimit := middleware.NewRefreshRateLimiter().Handler()

	// Gallery routes
	api.Get("/gallery", h.Gallery.GetGallery, galleryLimit)
	api.Get("/gallery/:platform", h.Gallery.GetSection, galleryLimit)
	api.Post("/gallery/:platform/next", h.Gallery.NextPage, galleryLimit)
	api.Post("/gallery/:platform/previous", h.Gallery.PreviousPage, galleryLimit)
	api.Post("/gallery/:platform/refresh", h.Gallery.Refresh, refreshLimit)
	api.Post("/gallery/cache/clear", h.Gallery.ClearCache, refreshLimit)
	api.Post("/gallery/filters/clear", h.Gallery.ClearFilters, galleryLimit)

	// Stats routes
	api.Get("/stats", h.Gallery.GetStats, middleware.NewStatsRateLimiter().Handler())

	// Admin insert (proxied to the source)
	api.Post("/videos", h.Gallery.AddVideo, middleware.NewAddVideoRateLimiter().Handler())
}

// SourceHandlers holds all handler instances needed by the source router.
type SourceHandlers struct {
	Videos *handler.VideosHandler
	Stats  *handler.StatsHandler
	Health *handler.HealthHandler
}

// SetupSource configures the middleware stack and all routes of the source
// service.
func SetupSource(app *fiber.App, h *SourceHandlers, corsOrigins string) {
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	feedLimit := middleware.NewFeedRateLimiter().Handler()

	app.Get("/videos", h.Videos.GetFeed, feedLimit)
	app.Post("/videos", h.Videos.AddVideo, middleware.NewAddVideoRateLimiter().Handler())
	app.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
