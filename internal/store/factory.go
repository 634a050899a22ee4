// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/shopkit/internal/content"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures the document backend.
type Options struct {
	// Backend is "sqlite", "redis" or "memory".
	Backend string

	// DBPath is the SQLite file (sqlite backend only).
	DBPath string

	// RedisURL and RedisPrefix configure the redis backend.
	RedisURL    string
	RedisPrefix string

	// MaxDocumentBytes limits the size of a saved document (0 = unlimited).
	MaxDocumentBytes int
}

// Storage bundles the document store with the resources opened for it.
type Storage struct {
	// Documents is the size-limited document store.
	Documents content.Store

	// DB and Events are set only for the sqlite backend.
	DB     *sql.DB
	Events *EventLog

	closers []func() error
}

// Open creates the backend named in opts.
func Open(opts Options) (*Storage, error) {
	s := &Storage{}
	var docs content.Store

	switch opts.Backend {
	case BackendSQLite, "":
		db, err := NewDB(opts.DBPath)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		s.DB = db
		s.Events = NewEventLog(db)
		s.closers = append(s.closers, db.Close)
		docs = NewDocumentStore(db)

	case BackendRedis:
		ropts := DefaultRedisOptions()
		ropts.URL = opts.RedisURL
		if opts.RedisPrefix != "" {
			ropts.Prefix = opts.RedisPrefix
		}
		rs, err := NewRedisStore(ropts)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, rs.Close)
		docs = rs

	case BackendMemory:
		docs = NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}

	s.Documents = Limit(docs, opts.MaxDocumentBytes)
	return s, nil
}

// Close releases every resource opened by Open.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
