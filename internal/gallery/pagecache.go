package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

// PageCacheTTL bounds how long a page may be served from the shared cache
// before a gallery instance goes back to the source.
const PageCacheTTL = 5 * time.Minute

// PageCache is an optional Redis second-level cache for fetched pages, shared
// across gallery instances. Each store's in-memory map stays authoritative;
// this layer only saves source round-trips on cold stores.
type PageCache struct {
	rdb *redis.Client
}

// NewPageCache creates a PageCache. If redisURL is empty or the connection
// fails, it returns a PageCache with a nil client (all operations no-op).
func NewPageCache(redisURL string) *PageCache {
	if redisURL == "" {
		log.Println("redis: no URL configured, shared page cache disabled")
		return &PageCache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, shared page cache disabled: %v", redisURL, err)
		return &PageCache{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, shared page cache disabled: %v", err)
		return &PageCache{}
	}

	log.Println("redis: connected, shared page cache enabled")
	return &PageCache{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *PageCache) Client() *redis.Client {
	return c.rdb
}

// GetPage retrieves a cached page. ok is false if not cached or cache disabled.
func (c *PageCache) GetPage(ctx context.Context, platform model.Platform, page int) (model.Page, bool) {
	if c.rdb == nil {
		return model.Page{}, false
	}
	data, err := c.rdb.Get(ctx, pageCacheKey(platform, page)).Bytes()
	if err != nil {
		return model.Page{}, false
	}
	var p model.Page
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Page{}, false
	}
	return p, true
}

// SetPage stores a page in the shared cache.
func (c *PageCache) SetPage(ctx context.Context, platform model.Platform, page int, p model.Page) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, pageCacheKey(platform, page), b, PageCacheTTL).Err()
}

// InvalidatePage removes one page from the shared cache (called by refresh
// and after an admin insert).
func (c *PageCache) InvalidatePage(ctx context.Context, platform model.Platform, page int) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, pageCacheKey(platform, page)).Err()
}

// InvalidatePlatform removes all cached pages for a platform.
func (c *PageCache) InvalidatePlatform(ctx context.Context, platform model.Platform) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("page:%s:*", platform), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close shuts down the Redis connection.
func (c *PageCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func pageCacheKey(platform model.Platform, page int) string {
	return fmt.Sprintf("page:%s:%d", platform, page)
}
