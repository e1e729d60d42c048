package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// Field length limits matching database schema constraints.
const (
	MaxTitleLen   = 200  // videos.title VARCHAR(200)
	MaxAuthorLen  = 100  // videos.author_name / author_user VARCHAR(100)
	MaxURLLen     = 2048 // videos.original_url / thumbnail_url
	MaxAddedByLen = 64   // videos.added_by VARCHAR(64)
	MaxPageNumber = 10000 // sanity bound for user-typed page params
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePlatform normalizes and checks a platform identifier.
func ValidatePlatform(s string) (model.Platform, string) {
	p, ok := model.ParsePlatform(s)
	if !ok {
		return "", "platform must be one of: youtube, tiktok, instagram"
	}
	return p, ""
}

// ValidatePage parses a page number param. Pages are 1-based.
func ValidatePage(s string) (int, string) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, "page must be an integer"
	}
	if n < 1 {
		return 0, "page must be at least 1"
	}
	if n > MaxPageNumber {
		return 0, "page is out of range"
	}
	return n, ""
}

// ValidateAddVideo trims and bounds an add-video payload in place. Returns a
// message for the first field that fails.
func ValidateAddVideo(req *model.AddVideoRequest) string {
	req.Platform = strings.TrimSpace(req.Platform)
	if req.Platform == "" {
		return "platform is required"
	}

	req.OriginalURL = strings.TrimSpace(req.OriginalURL)
	if req.OriginalURL == "" {
		return "originalUrl is required"
	}
	if len(req.OriginalURL) > MaxURLLen {
		return "originalUrl is too long"
	}
	if !strings.HasPrefix(req.OriginalURL, "http://") && !strings.HasPrefix(req.OriginalURL, "https://") {
		return "originalUrl must be an http(s) URL"
	}

	req.AddedBy = strings.TrimSpace(req.AddedBy)
	if req.AddedBy == "" {
		return "addedBy is required"
	}
	if len(req.AddedBy) > MaxAddedByLen {
		return "addedBy must be at most 64 characters"
	}

	req.Title = truncate(strings.TrimSpace(req.Title), MaxTitleLen)
	req.AuthorName = truncate(strings.TrimSpace(req.AuthorName), MaxAuthorLen)
	req.Username = truncate(strings.TrimSpace(req.Username), MaxAuthorLen)

	req.ThumbnailURL = strings.TrimSpace(req.ThumbnailURL)
	if len(req.ThumbnailURL) > MaxURLLen {
		return "thumbnailUrl is too long"
	}

	if req.Views < 0 {
		req.Views = 0
	}
	if req.Likes < 0 {
		req.Likes = 0
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
