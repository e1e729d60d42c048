package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

const defaultTimeout = 15 * time.Second

// Client talks to the video-metadata API (GET /videos, POST /videos). The
// gallery treats that API as a black box returning the page shape in
// model.Page; any service speaking the same contract works.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the source API at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchPage retrieves one page of videos for a platform. The platform is
// normalized to lowercase before the call; blank or unknown platforms are
// rejected without touching the network.
func (c *Client) FetchPage(ctx context.Context, platform model.Platform, page int) (model.Page, error) {
	p, ok := model.ParsePlatform(string(platform))
	if !ok {
		return model.Page{}, fmt.Errorf("invalid platform %q", platform)
	}
	if page < 1 {
		page = 1
	}

	u := fmt.Sprintf("%s/videos?platform=%s&page=%d", c.baseURL, url.QueryEscape(string(p)), page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Page{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Page{}, fmt.Errorf("fetch %s page %d: %w", p, page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return model.Page{}, fmt.Errorf("fetch %s page %d: %s (%s)", p, page, resp.Status, strings.TrimSpace(string(body)))
	}

	var result model.Page
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Page{}, fmt.Errorf("decode %s page %d: %w", p, page, err)
	}
	result.Normalize(page)
	return result, nil
}

// AddVideo submits a new video through the source API. The returned video
// carries the ID assigned by the source.
func (c *Client) AddVideo(ctx context.Context, req model.AddVideoRequest) (model.Video, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return model.Video{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/videos", bytes.NewReader(payload))
	if err != nil {
		return model.Video{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.Video{}, fmt.Errorf("add video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return model.Video{}, fmt.Errorf("add video: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}

	var video model.Video
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return model.Video{}, fmt.Errorf("decode add video response: %w", err)
	}
	return video, nil
}

// Ping checks that the source API is reachable (used by readiness probes).
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/live", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source unhealthy: %s", resp.Status)
	}
	return nil
}
