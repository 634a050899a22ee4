// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/shopkit/internal/content"
)

// ErrQuotaExceeded is returned when a value is larger than the configured limit.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// LimitedStore rejects writes larger than a fixed number of bytes.
type LimitedStore struct {
	content.Store
	maxBytes int
}

// Limit wraps s so that Set fails with ErrQuotaExceeded for values longer
// than maxBytes. A non-positive maxBytes returns s unchanged.
func Limit(s content.Store, maxBytes int) content.Store {
	if maxBytes <= 0 {
		return s
	}
	return &LimitedStore{Store: s, maxBytes: maxBytes}
}

// Set writes value when it fits within the limit.
func (s *LimitedStore) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQuotaExceeded, len(value), s.maxBytes)
	}
	return s.Store.Set(ctx, key, value)
}
