// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by a Store when no document exists under the key.
	ErrNotFound = errors.New("document not found")
	// ErrSaveFailed wraps any failure to persist the document.
	ErrSaveFailed = errors.New("save failed")
	// ErrResetFailed wraps any failure to remove the document.
	ErrResetFailed = errors.New("reset failed")
)

// Store is a string-keyed byte store holding the content document.
type Store interface {
	// Get returns the stored bytes or ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Options configures a Model.
type Options struct {
	Key      string        // storage key, DefaultStorageKey when empty
	Defaults func() Record // defaults source, Default when nil
	Logger   *slog.Logger
}

// Model loads, saves and resets the content document.
type Model struct {
	store    Store
	key      string
	defaults func() Record
	logger   *slog.Logger
}

// NewModel creates a Model over s.
func NewModel(s Store, opts Options) *Model {
	if opts.Key == "" {
		opts.Key = DefaultStorageKey
	}
	if opts.Defaults == nil {
		opts.Defaults = Default
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Model{
		store:    s,
		key:      opts.Key,
		defaults: opts.Defaults,
		logger:   opts.Logger,
	}
}

// Key returns the storage key the model reads and writes.
func (m *Model) Key() string {
	return m.key
}

// Defaults returns a fresh default record.
func (m *Model) Defaults() Record {
	return m.defaults()
}

// Load returns the live record. It never fails: an absent document, a read
// error or a corrupt document all yield the defaults.
func (m *Model) Load(ctx context.Context) Record {
	raw, err := m.store.Get(ctx, m.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Warn("content read failed, using defaults",
				"category", "storage", "key", m.key, "error", err)
		}
		return m.defaults()
	}

	rec, err := Merge(raw, m.defaults())
	if err != nil {
		m.logger.Warn("stored content is corrupt, using defaults",
			"category", "content", "key", m.key, "error", err)
	}
	return rec
}

// Save overwrites the stored document with r. Callers validate first.
func (m *Model) Save(ctx context.Context, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: encoding content: %v", ErrSaveFailed, err)
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	m.logger.Info("content saved", "key", m.key, "bytes", len(data))
	return nil
}

// Reset removes the stored document so the next Load yields pure defaults.
func (m *Model) Reset(ctx context.Context) error {
	if err := m.store.Delete(ctx, m.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrResetFailed, err)
	}
	m.logger.Info("content reset to defaults", "key", m.key)
	return nil
}

// Ping performs a read against the store. A missing document counts as healthy.
// Stores that implement Ping(ctx) error are asked directly.
func (m *Model) Ping(ctx context.Context) error {
	if p, ok := m.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	if _, err := m.store.Get(ctx, m.key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
