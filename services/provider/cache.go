package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"karigar/models"
	"karigar/monitoring"
	"karigar/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	directoryKeyPrefix  = "directory:page:"
	directoryVersionKey = "directory:version"
)

// DirectoryCache stores directory pages in Redis. Keys embed a version counter, so
// Invalidate only has to bump the counter; stale pages age out through their TTL.
// A nil cache or client behaves as a permanent miss.
type DirectoryCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *monitoring.Metrics
}

var _ PageCache = (*DirectoryCache)(nil)

func NewDirectoryCache(client *redis.Client, ttl time.Duration, metrics *monitoring.Metrics) *DirectoryCache {
	return &DirectoryCache{client: client, ttl: ttl, metrics: metrics}
}

// DirectoryKey is the cache key of one normalized query at a directory version.
// Free-text fields are quoted so separators inside them cannot collide.
func DirectoryKey(version int64, q models.DirectoryQuery) string {
	return fmt.Sprintf("%sv%d:%q|%q|%g|%s|%d|%d",
		directoryKeyPrefix, version, q.ServiceType, q.City, q.MinRating, q.SortBy, q.Page, q.Limit)
}

func (c *DirectoryCache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current directory version. Callers read it once before
// searching and pass it to Get and Set, so a page computed before an
// invalidation is never stored under the newer version.
func (c *DirectoryCache) Version(ctx context.Context) (int64, bool) {
	if !c.enabled() {
		return 0, false
	}
	v, err := c.client.Get(ctx, directoryVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		utils.GetLogger().Warn("Directory cache version read failed", zap.Error(err))
		c.miss()
		return 0, false
	}
	return v, true
}

// Get returns the cached page for q at version, if any.
func (c *DirectoryCache) Get(ctx context.Context, version int64, q models.DirectoryQuery) (*models.PageResult[models.ServiceProvider], bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, DirectoryKey(version, q)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("Directory cache read failed", zap.Error(err))
		}
		c.miss()
		return nil, false
	}
	var page models.PageResult[models.ServiceProvider]
	if err := json.Unmarshal(raw, &page); err != nil {
		c.miss()
		return nil, false
	}
	if c.metrics != nil {
		c.metrics.CacheHits.WithLabelValues("directory").Inc()
	}
	return &page, true
}

// Set stores page for q under version.
func (c *DirectoryCache) Set(ctx context.Context, version int64, q models.DirectoryQuery, page models.PageResult[models.ServiceProvider]) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, DirectoryKey(version, q), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("Directory cache write failed", zap.Error(err))
	}
}

// Invalidate makes every cached page unreachable.
func (c *DirectoryCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.client.Incr(ctx, directoryVersionKey).Err(); err != nil {
		utils.GetLogger().Warn("Directory cache invalidation failed", zap.Error(err))
	}
}

func (c *DirectoryCache) miss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.WithLabelValues("directory").Inc()
	}
}
