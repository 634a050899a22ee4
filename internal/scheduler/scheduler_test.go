// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/shopkit/internal/store"
)

type fakePruner struct {
	cutoff time.Time
	n      int64
	err    error
}

func (f *fakePruner) DeleteEventsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	logger := testLogger()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
	if New(nil).logger == nil {
		t.Error("New(nil) should fall back to the default logger")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testLogger())

	if err := s.AddEventPrune("@daily", &fakePruner{}, 24*time.Hour); err != nil {
		t.Fatalf("AddEventPrune() error = %v", err)
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}

	s.Start()
	s.Stop()
}

func TestScheduler_AddEventPruneInvalidSpec(t *testing.T) {
	s := New(testLogger())

	if err := s.AddEventPrune("every tuesday", &fakePruner{}, time.Hour); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestScheduler_PruneEventsCutoff(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := New(testLogger())
	s.now = func() time.Time { return now }

	p := &fakePruner{n: 7}
	if got := s.PruneEvents(p, 48*time.Hour); got != 7 {
		t.Errorf("PruneEvents() = %d, want 7", got)
	}
	if want := now.Add(-48 * time.Hour); !p.cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", p.cutoff, want)
	}
}

func TestScheduler_PruneEventsError(t *testing.T) {
	s := New(testLogger())

	if got := s.PruneEvents(&fakePruner{n: 3, err: errors.New("locked")}, time.Hour); got != 0 {
		t.Errorf("PruneEvents() = %d, want 0 on error", got)
	}
}

func TestScheduler_PruneEventLog(t *testing.T) {
	db, err := store.NewDB(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	events := store.NewEventLog(db)
	ctx := context.Background()
	old := store.Event{Level: store.EventLevelWarning, Category: store.EventCategorySystem, Message: "old", CreatedAt: time.Now().Add(-72 * time.Hour)}
	recent := store.Event{Level: store.EventLevelError, Category: store.EventCategoryStorage, Message: "recent", CreatedAt: time.Now()}
	for _, e := range []store.Event{old, recent} {
		if err := events.CreateEvent(ctx, e); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	s := New(testLogger())
	if got := s.PruneEvents(events, 24*time.Hour); got != 1 {
		t.Errorf("PruneEvents() = %d, want 1", got)
	}

	left, err := events.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(left) != 1 || left[0].Message != "recent" {
		t.Errorf("remaining events = %+v, want only the recent one", left)
	}
}
