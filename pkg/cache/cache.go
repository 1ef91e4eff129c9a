// Package cache memoizes search results and composed replies for a bounded time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrCacheMiss indicates a cache miss. Expired entries are misses too.
var ErrCacheMiss = errors.New("cache miss")

// Store defines the cache interface.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SearchKey identifies a provider search for a normalized query.
func SearchKey(query string, limit int) string {
	return fmt.Sprintf("search:%d:%s", limit, strings.TrimSpace(query))
}

// ResponseKey identifies a composed reply for a query over a candidate set.
// Candidate order does not matter.
func ResponseKey(query string, candidateIDs []string) string {
	ids := append([]string(nil), candidateIDs...)
	sort.Strings(ids)
	return fmt.Sprintf("ai:%s:%s", strings.TrimSpace(query), strings.Join(ids, ","))
}

// GetJSON decodes a cached JSON value into dst.
func GetJSON(ctx context.Context, s Store, key string, dst interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode cached value: %w", err)
	}
	return nil
}

// SetJSON encodes value as JSON and caches it.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	return s.Set(ctx, key, data, ttl)
}
