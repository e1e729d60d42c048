package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clipgallery/clipgallery-go/internal/gallery"
	"github.com/clipgallery/clipgallery-go/internal/middleware"
	"github.com/clipgallery/clipgallery-go/internal/model"
	"github.com/clipgallery/clipgallery-go/internal/source"
	"github.com/clipgallery/clipgallery-go/pkg/hash"
)

type GalleryHandler struct {
	orch *gallery.Orchestrator
	src  *source.Client
}

func NewGalleryHandler(orch *gallery.Orchestrator, src *source.Client) *GalleryHandler {
	return &GalleryHandler{orch: orch, src: src}
}

// GetGallery handles GET /api/gallery
//
// Query params mirror the UI's query state: search, author, category,
// minViews, maxViews, minLikes, maxLikes, tab. The response carries the
// platform sections in ranked order; filtering is applied client-side over
// already-fetched pages and never forwarded to the source.
func (h *GalleryHandler) GetGallery(c fiber.Ctx) error {
	h.applyQuery(c)

	sections := h.orch.Sections(c.Context())

	order := make([]model.Platform, 0, len(sections))
	for _, s := range sections {
		order = append(order, s.Platform)
	}

	return c.JSON(fiber.Map{
		"tab":              h.orch.Tab(),
		"order":            order,
		"sections":         sections,
		"counts":           h.orch.Counts(),
		"hasActiveFilters": h.orch.HasActiveFilters(),
	})
}

// GetSection handles GET /api/gallery/:platform?page={n}
func (h *GalleryHandler) GetSection(c fiber.Ctx) error {
	platform, errMsg := middleware.ValidatePlatform(c.Params("platform"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM", errMsg)
	}

	page := 0
	if raw := fiber.Query[string](c, "page"); raw != "" {
		page, errMsg = middleware.ValidatePage(raw)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PAGE", errMsg)
		}
	}

	h.applyQuery(c)

	section, ok := h.orch.Section(c.Context(), platform, page)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Unknown platform")
	}
	return c.JSON(section)
}

// NextPage handles POST /api/gallery/:platform/next
func (h *GalleryHandler) NextPage(c fiber.Ctx) error {
	return h.navigate(c, func(s *gallery.Store) { s.NextPage(c.Context()) })
}

// PreviousPage handles POST /api/gallery/:platform/previous
func (h *GalleryHandler) PreviousPage(c fiber.Ctx) error {
	return h.navigate(c, func(s *gallery.Store) { s.PreviousPage(c.Context()) })
}

// Refresh handles POST /api/gallery/:platform/refresh — drops the cached
// current page and forces a source round-trip. Open to everyone, so an error
// panel's retry works without privileges.
func (h *GalleryHandler) Refresh(c fiber.Ctx) error {
	platform, errMsg := middleware.ValidatePlatform(c.Params("platform"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM", errMsg)
	}
	if !h.orch.Refresh(c.Context(), platform) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Unknown platform")
	}
	return c.JSON(h.orch.Store(platform).Snapshot())
}

// ClearCache handles POST /api/gallery/cache/clear
func (h *GalleryHandler) ClearCache(c fiber.Ctx) error {
	h.orch.ClearCaches(c.Context())
	return c.JSON(fiber.Map{"success": true})
}

// ClearFilters handles POST /api/gallery/filters/clear — resets structured
// filters to defaults; the search term is kept.
func (h *GalleryHandler) ClearFilters(c fiber.Ctx) error {
	h.orch.ClearFilters()
	return c.JSON(h.orch.Query())
}

// GetStats handles GET /api/stats — per-platform totals as last reported by
// the stores.
func (h *GalleryHandler) GetStats(c fiber.Ctx) error {
	totals := make(fiber.Map, len(model.DefaultPlatformOrder))
	for _, p := range model.DefaultPlatformOrder {
		snap := h.orch.Store(p).Snapshot()
		totals[string(p)] = fiber.Map{
			"totalVideos": snap.Page.TotalVideos,
			"totalPages":  snap.Page.TotalPages,
			"state":       snap.State,
		}
	}
	return c.JSON(fiber.Map{"platforms": totals, "counts": h.orch.Counts()})
}

// AddVideo handles POST /api/videos — forwards the admin insert to the source
// and refreshes the matching store so the new video becomes visible.
func (h *GalleryHandler) AddVideo(c fiber.Ctx) error {
	var req model.AddVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if errMsg := middleware.ValidateAddVideo(&req); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.src.AddVideo(c.Context(), req)
	if err != nil {
		middleware.Logger.Error().
			Err(err).
			Str("addedByHash", hash.SubmitterHash(req.AddedBy)).
			Msg("add video failed")
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "SOURCE_ERROR", "Failed to add video")
	}

	h.orch.Refresh(c.Context(), video.Platform)

	return c.Status(fiber.StatusCreated).JSON(video)
}

// applyQuery copies the request's query params into the orchestrator's query
// state. One request is one user action; missing params clear their fields.
func (h *GalleryHandler) applyQuery(c fiber.Ctx) {
	h.orch.SetSearch(fiber.Query[string](c, "search"))
	h.orch.SetFilters(model.Filters{
		Author:   fiber.Query[string](c, "author"),
		Category: fiber.Query[string](c, "category", model.CategoryAll),
		MinViews: fiber.Query[string](c, "minViews"),
		MaxViews: fiber.Query[string](c, "maxViews"),
		MinLikes: fiber.Query[string](c, "minLikes"),
		MaxLikes: fiber.Query[string](c, "maxLikes"),
	})
	if tab := fiber.Query[string](c, "tab"); tab != "" {
		h.orch.SetTab(tab)
	} else {
		h.orch.SetTab(gallery.TabAll)
	}
}

func (h *GalleryHandler) navigate(c fiber.Ctx, op func(*gallery.Store)) error {
	platform, errMsg := middleware.ValidatePlatform(c.Params("platform"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM", errMsg)
	}
	store := h.orch.Store(platform)
	if store == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Unknown platform")
	}
	store.EnsureFirstPage(c.Context())
	op(store)
	return c.JSON(store.Snapshot())
}
