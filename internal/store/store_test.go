// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/shopkit/internal/content"
)

// testDB creates a temporary migrated test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "shopkit-test.db")
	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// exerciseStore runs the shared content.Store contract against s.
func exerciseStore(t *testing.T, s content.Store) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + strings.ReplaceAll(t.Name(), "/", "-")

	if _, err := s.Get(ctx, key); !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, key, []byte(`{"businessName":"A"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, key, []byte(`{"businessName":"B"}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"businessName":"B"}` {
		t.Errorf("Get = %s, want the overwritten document", got)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestDocumentStore(t *testing.T) {
	exerciseStore(t, NewDocumentStore(testDB(t)))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	// Values are copied on the way in and out.
	ctx := context.Background()
	in := []byte("abc")
	_ = s.Set(ctx, "k", in)
	in[0] = 'x'
	out, _ := s.Get(ctx, "k")
	out[1] = 'y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value was aliased: %q", again)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("SHOPKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: SHOPKIT_TEST_REDIS_URL not set")
	}

	opts := DefaultRedisOptions()
	opts.URL = url
	opts.Prefix = "shopkit-test:"
	s, err := NewRedisStore(opts)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer func() { _ = s.Close() }()

	exerciseStore(t, s)

	_ = s.Close()
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Get after Close: err = %v, want ErrStoreClosed", err)
	}
}

func TestNewRedisStore_RequiresURL(t *testing.T) {
	if _, err := NewRedisStore(RedisOptions{}); err == nil {
		t.Error("expected an error for an empty URL")
	}
}

func TestLimit(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := Limit(inner, 8)

	if err := s.Set(ctx, "k", []byte("12345678")); err != nil {
		t.Fatalf("Set at the limit: %v", err)
	}
	err := s.Set(ctx, "k", []byte("123456789"))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	got, _ := s.Get(ctx, "k")
	if string(got) != "12345678" {
		t.Errorf("rejected write changed the document: %q", got)
	}

	if Limit(inner, 0) != content.Store(inner) {
		t.Error("Limit with no limit should return the store unchanged")
	}
}

func TestLimit_ModelSaveFails(t *testing.T) {
	m := content.NewModel(Limit(NewMemoryStore(), 16), content.Options{})
	err := m.Save(context.Background(), content.Default())
	if !errors.Is(err, content.ErrSaveFailed) || !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("err = %v, want ErrSaveFailed wrapping ErrQuotaExceeded", err)
	}
}

func TestEventLog(t *testing.T) {
	ctx := context.Background()
	log := NewEventLog(testDB(t))

	old := time.Now().Add(-48 * time.Hour)
	if err := log.CreateEvent(ctx, Event{
		Level:     EventLevelWarning,
		Category:  EventCategoryStorage,
		Message:   "old",
		CreatedAt: old,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := log.CreateEvent(ctx, Event{
		Level:    EventLevelError,
		Category: EventCategoryContent,
		Message:  "new",
		Metadata: `{"key":"coffeeShopCMSData"}`,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := log.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Message != "new" || events[0].Metadata != `{"key":"coffeeShopCMSData"}` {
		t.Errorf("newest event = %+v", events[0])
	}
	if events[1].Metadata != "{}" {
		t.Errorf("default metadata = %q, want {}", events[1].Metadata)
	}

	n, err := log.DeleteEventsBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d events, want 1", n)
	}
}

func TestOpen(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		s, err := Open(Options{
			Backend:          BackendSQLite,
			DBPath:           filepath.Join(t.TempDir(), "nested", "shopkit.db"),
			MaxDocumentBytes: 1024,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer func() { _ = s.Close() }()

		if s.DB == nil || s.Events == nil {
			t.Error("sqlite backend should expose DB and Events")
		}
		exerciseStore(t, s.Documents)
	})

	t.Run("memory", func(t *testing.T) {
		s, err := Open(Options{Backend: BackendMemory})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if s.DB != nil {
			t.Error("memory backend should not open a database")
		}
		exerciseStore(t, s.Documents)
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Open(Options{Backend: "etcd"}); err == nil {
			t.Error("expected an error for an unknown backend")
		}
	})
}
