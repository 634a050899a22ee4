// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache keeps recently read content documents in memory so repeated
// storefront requests do not hit the backing store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/shopkit/internal/content"
)

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Stats holds cache statistics.
type Stats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Items   int
	HitRate float64 // percentage
}

// Cache is a byte cache with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DocumentCache is a read-through, write-through cache in front of a content.Store.
type DocumentCache struct {
	next  content.Store
	cache Cache
	ttl   time.Duration
}

// NewDocumentCache wraps next. Documents read or written are kept for ttl.
func NewDocumentCache(next content.Store, c Cache, ttl time.Duration) *DocumentCache {
	return &DocumentCache{next: next, cache: c, ttl: ttl}
}

// Get returns the cached document or loads it from the backing store.
// Absent documents are not cached.
func (s *DocumentCache) Get(ctx context.Context, key string) ([]byte, error) {
	if b, err := s.cache.Get(ctx, key); err == nil {
		return b, nil
	}

	b, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, b, s.ttl)
	return b, nil
}

// Set writes to the backing store, then refreshes the cache. A failed write
// evicts the entry so the next read goes to the store.
func (s *DocumentCache) Set(ctx context.Context, key string, value []byte) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		_ = s.cache.Delete(ctx, key)
		return err
	}
	_ = s.cache.Set(ctx, key, value, s.ttl)
	return nil
}

// pingKey is read by Ping. It is never written.
const pingKey = "__ping__"

// Ping performs a read against the backing store, bypassing the cache.
func (s *DocumentCache) Ping(ctx context.Context) error {
	if _, err := s.next.Get(ctx, pingKey); err != nil && !errors.Is(err, content.ErrNotFound) {
		return err
	}
	return nil
}

// Delete evicts the entry and removes the document from the backing store.
func (s *DocumentCache) Delete(ctx context.Context, key string) error {
	cacheErr := s.cache.Delete(ctx, key)
	if err := s.next.Delete(ctx, key); err != nil {
		return err
	}
	if cacheErr != nil && !errors.Is(cacheErr, ErrCacheClosed) {
		return cacheErr
	}
	return nil
}
