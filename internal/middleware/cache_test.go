// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/shopkit/web"
)

func staticServer(t *testing.T, maxAge int) http.Handler {
	t.Helper()
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	return StaticCache(maxAge)(http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))
}

func TestStaticCache_EmbeddedAssets(t *testing.T) {
	tests := []struct {
		path        string
		maxAge      int
		wantCache   string
		contentType string
	}{
		{"/static/css/site.css", 86400, "public, max-age=86400", "text/css"},
		{"/static/js/editor.js", 86400, "public, max-age=86400", "javascript"},
		{"/static/css/editor.css", 0, "no-cache", "text/css"},
		{"/static/js/site.js", -1, "no-cache", "javascript"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			staticServer(t, tt.maxAge).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := rec.Header().Get("Cache-Control"); got != tt.wantCache {
				t.Errorf("Cache-Control = %q, want %q", got, tt.wantCache)
			}
			if got := rec.Header().Get("Content-Type"); !strings.Contains(got, tt.contentType) {
				t.Errorf("Content-Type = %q, want %s", got, tt.contentType)
			}
			if rec.Body.Len() == 0 {
				t.Error("empty asset body")
			}
		})
	}
}

func TestStaticCache_MissingAsset(t *testing.T) {
	rec := httptest.NewRecorder()
	staticServer(t, 3600).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/missing.css", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	// The header is set before the file server runs.
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}
