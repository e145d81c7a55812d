package companieshouse

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/M1rr0rb4all/pscback/internal/ownership"
)

// registry is the slice of the client the cache decorates.
type registry interface {
	ownership.CompanySearcher
	ownership.PartiesFetcher
}

// CachedClient is a read-through cache over the registry. Cache faults are
// never fatal: a broken cache degrades to upstream calls.
type CachedClient struct {
	next   registry
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next with a redis-backed cache. TTL enforces retention for
// registry data, so stale ownership facts age out on their own.
func NewCached(next registry, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// Search implements ownership.CompanySearcher with caching keyed on the
// lowercased query.
func (c *CachedClient) Search(ctx context.Context, name string) ([]ownership.CompanyMatch, error) {
	key := "ch:search:" + strings.ToLower(strings.TrimSpace(name))

	var cached []ownership.CompanyMatch
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	matches, err := c.next.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, matches)
	return matches, nil
}

// Parties implements ownership.PartiesFetcher with caching keyed on the
// company number. Empty PSC lists are cached too: "no PSC data" is a real
// answer the register gave.
func (c *CachedClient) Parties(ctx context.Context, companyNumber string) ([]ownership.ControlRecord, error) {
	key := "ch:psc:" + companyNumber

	var cached []ownership.ControlRecord
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	records, err := c.next.Parties(ctx, companyNumber)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, records)
	return records, nil
}

func (c *CachedClient) lookup(ctx context.Context, key string, out any) bool {
	body, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "registry cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.WarnContext(ctx, "registry cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedClient) store(ctx context.Context, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "registry cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "registry cache write failed", "key", key, "error", err)
	}
}
