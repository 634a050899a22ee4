// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/shopkit/internal/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestNew_SQLiteStore(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if _, ok := sm.Store.(*sqlite3store.SQLite3Store); !ok {
		t.Errorf("Store = %T, want *sqlite3store.SQLite3Store", sm.Store)
	}
}

func TestNew_MemoryStore(t *testing.T) {
	sm := New(nil, true)

	if _, ok := sm.Store.(*memstore.MemStore); !ok {
		t.Errorf("Store = %T, want *memstore.MemStore", sm.Store)
	}
}

func TestNew_DevMode(t *testing.T) {
	sm := New(nil, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == CookieName {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(nil, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != CookieName {
		t.Errorf("expected %s cookie name, got %q", CookieName, sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(nil, true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	sm := New(setupTestDB(t), true)

	expiry := time.Now().Add(time.Hour)
	if err := sm.Store.Commit("token", []byte("draft"), expiry); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	b, found, err := sm.Store.Find("token")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !found || string(b) != "draft" {
		t.Errorf("Find() = %q, %v; want %q, true", b, found, "draft")
	}

	if err := sm.Store.Delete("token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := sm.Store.Find("token"); found {
		t.Error("session still present after Delete")
	}
}
