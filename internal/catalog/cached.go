// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodmate/internal/cache"
	"github.com/tomtom215/moodmate/internal/metrics"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
)

// CachedSource memoizes an inner source by domain and active filter.
// Mood and weather are not part of the key: sources only read filters.
// Errors are never cached.
type CachedSource struct {
	inner recommend.DataSource
	lru   *cache.LRU[[]models.Item]
}

// NewCachedSource wraps inner with a TTL LRU.
func NewCachedSource(inner recommend.DataSource, size int, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner: inner,
		lru:   cache.NewLRU[[]models.Item](size, ttl),
	}
}

// Query implements recommend.DataSource.
//
//nolint:gocritic // hugeParam: signature fixed by recommend.DataSource
func (c *CachedSource) Query(ctx context.Context, req recommend.Request) ([]models.Item, error) {
	key, err := fingerprint(&req)
	if err != nil {
		return nil, err
	}

	if items, ok := c.lru.Get(key); ok {
		metrics.RecordCatalogCache(true)
		return models.CloneItems(items), nil
	}
	metrics.RecordCatalogCache(false)

	items, err := c.inner.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, models.CloneItems(items))
	return items, nil
}

// Purge drops every cached entry.
func (c *CachedSource) Purge() {
	c.lru.Clear()
}

// Stats returns cache hit/miss counters and size.
func (c *CachedSource) Stats() (hits, misses int64, size int) {
	return c.lru.Stats()
}

// fingerprint derives the cache key from the domain's active filter.
func fingerprint(req *recommend.Request) (string, error) {
	var filter any
	switch req.Domain {
	case models.DomainMovie:
		filter = req.Movie
	case models.DomainMusic:
		filter = req.Music
	default:
		return "", fmt.Errorf("cache: %w: %s", ErrUnsupportedDomain, req.Domain)
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("cache: fingerprint filter: %w", err)
	}
	sum := sha256.Sum256(raw)
	return string(req.Domain) + ":" + hex.EncodeToString(sum[:16]), nil
}

var _ recommend.DataSource = (*CachedSource)(nil)
