package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipgallery/clipgallery-go/internal/model"
	"github.com/clipgallery/clipgallery-go/internal/repository"
)

// PageSize is the number of videos per feed page, fixed server-side.
const PageSize = 12

var (
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrMissingURL      = errors.New("originalUrl is required")
	ErrMissingAddedBy  = errors.New("addedBy is required")
)

// CatalogService assembles feed pages and handles admin inserts for the
// source API.
type CatalogService struct {
	repo *repository.VideoRepo
}

func NewCatalogService(repo *repository.VideoRepo) *CatalogService {
	return &CatalogService{repo: repo}
}

// BuildPage returns one page of a platform's feed with pagination metadata
// satisfying the page invariants (hasNextPage == page < totalPages, etc.).
func (s *CatalogService) BuildPage(ctx context.Context, platform model.Platform, page int) (model.Page, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx, platform)
	if err != nil {
		return model.Page{}, err
	}

	totalPages := (total + PageSize - 1) / PageSize

	var videos []model.Video
	if total > 0 && page <= totalPages {
		videos, err = s.repo.ListPage(ctx, platform, PageSize, (page-1)*PageSize)
		if err != nil {
			return model.Page{}, err
		}
	}

	result := model.Page{
		Videos:      videos,
		TotalPages:  totalPages,
		TotalVideos: total,
	}
	result.Normalize(page)
	return result, nil
}

// AddVideo normalizes and stores a submitted video, assigning it an ID.
func (s *CatalogService) AddVideo(ctx context.Context, req model.AddVideoRequest) (model.Video, error) {
	platform, ok := model.ParsePlatform(req.Platform)
	if !ok {
		return model.Video{}, ErrInvalidPlatform
	}
	if strings.TrimSpace(req.OriginalURL) == "" {
		return model.Video{}, ErrMissingURL
	}
	if strings.TrimSpace(req.AddedBy) == "" {
		return model.Video{}, ErrMissingAddedBy
	}

	now := time.Now().UTC()
	v := model.Video{
		ID:           uuid.NewString(),
		Platform:     platform,
		Title:        strings.TrimSpace(req.Title),
		AuthorName:   strings.TrimSpace(req.AuthorName),
		AuthorUser:   strings.TrimSpace(req.Username),
		OriginalURL:  strings.TrimSpace(req.OriginalURL),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		Views:        max(req.Views, 0),
		Likes:        max(req.Likes, 0),
		CreatedAt:    &now,
		AddedBy:      strings.TrimSpace(req.AddedBy),
	}

	if err := s.repo.Insert(ctx, v); err != nil {
		return model.Video{}, err
	}
	return v, nil
}

// PlatformTotals returns the per-platform catalog sizes.
func (s *CatalogService) PlatformTotals(ctx context.Context) (model.ResultMap, error) {
	totals, err := s.repo.PlatformTotals(ctx)
	if err != nil {
		return nil, err
	}
	// Report zero explicitly for platforms with no rows yet.
	for _, p := range model.DefaultPlatformOrder {
		if _, ok := totals[p]; !ok {
			totals[p] = 0
		}
	}
	return totals, nil
}
