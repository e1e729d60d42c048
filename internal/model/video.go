package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Platform identifies one of the supported short-video sources.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

// DefaultPlatformOrder is the gallery display order when no search or filter
// is active.
var DefaultPlatformOrder = []Platform{PlatformYouTube, PlatformTikTok, PlatformInstagram}

// ParsePlatform normalizes s (case-insensitive, trimmed) to a known platform.
// ok is false for blank or unknown values.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformYouTube:
		return PlatformYouTube, true
	case PlatformTikTok:
		return PlatformTikTok, true
	case PlatformInstagram:
		return PlatformInstagram, true
	}
	return "", false
}

// Video is one short-form video's metadata as served by the source API.
type Video struct {
	ID           string     `json:"id"`
	Platform     Platform   `json:"platform"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	AuthorName   string     `json:"authorName,omitempty"`
	AuthorUser   string     `json:"username,omitempty"`
	OriginalURL  string     `json:"originalUrl"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Views        int        `json:"views"`
	Likes        int        `json:"likes"`
	Category     string     `json:"category,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	AddedBy      string     `json:"addedBy,omitempty"`
}

// videoWire tolerates the field aliases older source payloads use
// (author/authorName, username/authorUser).
type videoWire struct {
	ID           string     `json:"id"`
	Platform     string     `json:"platform"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AuthorName   string     `json:"authorName"`
	Author       string     `json:"author"`
	AuthorUser   string     `json:"authorUser"`
	Username     string     `json:"username"`
	OriginalURL  string     `json:"originalUrl"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	Views        *int       `json:"views"`
	Likes        *int       `json:"likes"`
	Category     string     `json:"category"`
	CreatedAt    *time.Time `json:"createdAt"`
	AddedBy      string     `json:"addedBy"`
}

// UnmarshalJSON decodes a video, coalescing aliases into the canonical fields
// and defaulting missing counters to zero.
func (v *Video) UnmarshalJSON(data []byte) error {
	var w videoWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	v.ID = w.ID
	v.Platform = Platform(strings.ToLower(w.Platform))
	v.Title = w.Title
	v.Description = w.Description
	v.AuthorName = w.AuthorName
	if v.AuthorName == "" {
		v.AuthorName = w.Author
	}
	v.AuthorUser = w.AuthorUser
	if v.AuthorUser == "" {
		v.AuthorUser = w.Username
	}
	v.OriginalURL = w.OriginalURL
	v.ThumbnailURL = w.ThumbnailURL
	v.Views = 0
	if w.Views != nil && *w.Views > 0 {
		v.Views = *w.Views
	}
	v.Likes = 0
	if w.Likes != nil && *w.Likes > 0 {
		v.Likes = *w.Likes
	}
	v.Category = w.Category
	v.CreatedAt = w.CreatedAt
	v.AddedBy = w.AddedBy
	return nil
}

// Page is one fetched batch of videos plus pagination metadata.
type Page struct {
	Videos          []Video `json:"videos"`
	CurrentPage     int     `json:"currentPage"`
	TotalPages      int     `json:"totalPages"`
	TotalVideos     int     `json:"totalVideos"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
}

// Normalize enforces the page invariants for the given current page number:
// a non-nil video slice, non-negative counters, and the next/previous flags
// derived from currentPage vs totalPages.
func (p *Page) Normalize(currentPage int) {
	if p.Videos == nil {
		p.Videos = []Video{}
	}
	if p.TotalPages < 0 {
		p.TotalPages = 0
	}
	if p.TotalVideos < 0 {
		p.TotalVideos = 0
	}
	p.CurrentPage = currentPage
	p.HasNextPage = currentPage < p.TotalPages
	p.HasPreviousPage = currentPage > 1
}

// AddVideoRequest is the normalized POST /videos payload.
type AddVideoRequest struct {
	Platform     string `json:"platform"`
	OriginalURL  string `json:"originalUrl"`
	AddedBy      string `json:"addedBy"`
	Title        string `json:"title,omitempty"`
	AuthorName   string `json:"authorName,omitempty"`
	Username     string `json:"username,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Views        int    `json:"views,omitempty"`
	Likes        int    `json:"likes,omitempty"`
}
