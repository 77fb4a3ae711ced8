// Package cache keeps recently computed search pages in Redis.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"

	"github.com/spec-kit/chamados/internal/query"
)

// SearchCache stores search results keyed by query spec.
//
// Callers must take their store snapshot after Get: Set writes under the
// generation Get observed, so a page computed before an Invalidate is never
// stored where later readers look.
type SearchCache interface {
	Get(ctx context.Context, spec query.Spec) (Lookup, error)
	Set(ctx context.Context, lookup Lookup, result query.Result) error
	// Invalidate drops every cached page, e.g. after a create.
	Invalidate(ctx context.Context) error
}

// Lookup is the outcome of Get. Key is empty when the cache is disabled.
type Lookup struct {
	Key    string
	Result query.Result
	Hit    bool
}

// redisClient is the subset of *redis.Client the cache needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// DefaultTTL applies when a non-positive ttl is given; Redis would otherwise
// keep pages forever.
const DefaultTTL = time.Minute

type redisSearchCache struct {
	client redisClient
	// namespace is "<prefix>:search:<boot id>". The store is rebuilt on every
	// start, so pages from an earlier process must never be read.
	namespace string
	ttl       time.Duration
}

// NewRedisSearchCache builds a cache on top of client. Keys embed a per-process
// boot id and a generation counter, so Invalidate is a single INCR and pages
// left behind by an earlier process or generation expire through ttl.
func NewRedisSearchCache(client redisClient, prefix string, ttl time.Duration) SearchCache {
	if prefix == "" {
		prefix = "chamados"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisSearchCache{
		client:    client,
		namespace: prefix + ":search:" + uuid.NewString(),
		ttl:       ttl,
	}
}

func (c *redisSearchCache) Get(ctx context.Context, spec query.Spec) (Lookup, error) {
	key, err := c.key(ctx, spec)
	if err != nil {
		return Lookup{}, err
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{Key: key}, nil
	}
	if err != nil {
		return Lookup{Key: key}, fmt.Errorf("cache get: %w", err)
	}
	var result query.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Lookup{Key: key}, fmt.Errorf("cache decode: %w", err)
	}
	return Lookup{Key: key, Result: result, Hit: true}, nil
}

func (c *redisSearchCache) Set(ctx context.Context, lookup Lookup, result query.Result) error {
	if lookup.Key == "" {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, lookup.Key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *redisSearchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	// The counter must outlive the pages it guards.
	if err := c.client.Expire(ctx, c.generationKey(), 2*c.ttl).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *redisSearchCache) generationKey() string {
	return c.namespace + ":gen"
}

func (c *redisSearchCache) key(ctx context.Context, spec query.Spec) (string, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		gen = 0
	} else if err != nil {
		return "", fmt.Errorf("cache generation: %w", err)
	}
	return c.namespace + ":" + strconv.FormatInt(gen, 10) + ":" + Fingerprint(spec), nil
}

// fingerprintInput is the canonical form hashed into cache keys.
type fingerprintInput struct {
	Query      string   `json:"q"`
	Status     []string `json:"s"`
	Prioridade []string `json:"p"`
	Area       []string `json:"a"`
	SortBy     string   `json:"sb"`
	SortOrder  string   `json:"so"`
	Page       int      `json:"pg"`
	PageSize   int      `json:"ps"`
}

// Fingerprint hashes the normalized spec. Filter sets are order-insensitive,
// so specs that select the same page share a fingerprint.
func Fingerprint(spec query.Spec) string {
	spec = spec.Normalized()
	in := fingerprintInput{
		Query:      spec.Query,
		Status:     sortedStrings(spec.Status),
		Prioridade: sortedStrings(spec.Prioridade),
		Area:       sortedStrings(spec.Area),
		SortBy:     string(spec.SortBy),
		SortOrder:  string(spec.SortOrder),
		Page:       spec.Page,
		PageSize:   spec.PageSize,
	}
	raw, _ := json.Marshal(in)
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func sortedStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

type noopSearchCache struct{}

// NewNoopSearchCache returns a cache that never hits.
func NewNoopSearchCache() SearchCache {
	return noopSearchCache{}
}

func (noopSearchCache) Get(context.Context, query.Spec) (Lookup, error) {
	return Lookup{}, nil
}

func (noopSearchCache) Set(context.Context, Lookup, query.Result) error { return nil }

func (noopSearchCache) Invalidate(context.Context) error { return nil }
