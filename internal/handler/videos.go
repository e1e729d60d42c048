package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clipgallery/clipgallery-go/internal/middleware"
	"github.com/clipgallery/clipgallery-go/internal/model"
	"github.com/clipgallery/clipgallery-go/internal/service"
	"github.com/clipgallery/clipgallery-go/pkg/hash"
)

type VideosHandler struct {
	svc *service.CatalogService
}

func NewVideosHandler(svc *service.CatalogService) *VideosHandler {
	return &VideosHandler{svc: svc}
}

// GetFeed handles GET /videos?platform={platform}&page={n}
func (h *VideosHandler) GetFeed(c fiber.Ctx) error {
	platform, errMsg := middleware.ValidatePlatform(fiber.Query[string](c, "platform"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM", errMsg)
	}

	page, errMsg := middleware.ValidatePage(fiber.Query[string](c, "page", "1"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PAGE", errMsg)
	}

	result, err := h.svc.BuildPage(c.Context(), platform, page)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build feed page")
	}

	return c.JSON(result)
}

// AddVideo handles POST /videos
func (h *VideosHandler) AddVideo(c fiber.Ctx) error {
	var req model.AddVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if errMsg := middleware.ValidateAddVideo(&req); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.svc.AddVideo(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlatform):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM",
				"Platform must be one of: youtube, tiktok, instagram")
		case errors.Is(err, service.ErrMissingURL), errors.Is(err, service.ErrMissingAddedBy):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", err.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add video")
	}

	// Submitter IDs never reach the logs raw.
	middleware.Logger.Info().
		Str("platform", string(video.Platform)).
		Str("videoId", video.ID).
		Str("addedByHash", hash.SubmitterHash(req.AddedBy)).
		Msg("video added")

	return c.Status(fiber.StatusCreated).JSON(video)
}
