// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/shopkit/internal/content"
	"github.com/olegiv/shopkit/internal/editor"
	"github.com/olegiv/shopkit/internal/render"
	"github.com/olegiv/shopkit/internal/store"
	"github.com/olegiv/shopkit/internal/version"
	"github.com/olegiv/shopkit/web"
)

const testDataURL = "data:image/png;base64,iVBORw0KGgo="

// flakyStore wraps a MemoryStore and fails writes on demand.
type flakyStore struct {
	*store.MemoryStore

	mu      sync.Mutex
	failSet bool
	failDel bool
	failGet bool
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return nil, errors.New("storage offline")
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	fail := s.failDel
	s.mu.Unlock()
	if fail {
		return errors.New("storage offline")
	}
	return s.MemoryStore.Delete(ctx, key)
}

func (s *flakyStore) setFailures(set, del, get bool) {
	s.mu.Lock()
	s.failSet, s.failDel, s.failGet = set, del, get
	s.mu.Unlock()
}

// stubEncoder turns any non-empty upload into a fixed data URL.
type stubEncoder struct{}

func (stubEncoder) DataURL(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", errors.New("empty file")
	}
	return testDataURL, nil
}

type testApp struct {
	server *httptest.Server
	client *http.Client
	store  *flakyStore
	model  *content.Model
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRenderer parses the embedded templates.
func newTestRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return renderer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	sm := scs.New()
	renderer := newTestRenderer(t, sm)

	st := &flakyStore{MemoryStore: store.NewMemoryStore()}
	model := content.NewModel(st, content.Options{Logger: discardLogger()})

	editorHandler := NewEditorHandler(EditorConfig{
		Model:           model,
		Images:          stubEncoder{},
		Options:         editor.Options{MaxMenuRows: 8, Logger: discardLogger()},
		Renderer:        renderer,
		SessionManager:  sm,
		MaxRequestBytes: 1 << 20,
	})
	storefrontHandler := NewStorefrontHandler(model, renderer)
	healthHandler := NewHealthHandler(model, version.New("v1.2.3", "", ""))

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Get(RouteRoot, storefrontHandler.Show)
	r.Get(RouteAdmin, editorHandler.Show)
	r.Post(RouteAdmin, editorHandler.Submit)
	r.Post(RouteAdminReset, editorHandler.Reset)
	r.Get(RouteHealth, healthHandler.Health)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{server: srv, client: client, store: st, model: model}
}

// get returns the status and body of a GET request.
func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readResponse(t, resp)
}

// postForm submits url-encoded values and returns the response.
func (a *testApp) postForm(t *testing.T, path string, values url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, values)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func readResponse(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(b)
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q", want)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("body unexpectedly contains %q", unwanted)
	}
}

// assertRedirect checks a 303 back to the editor and drains the body.
func assertRedirect(t *testing.T, resp *http.Response) {
	t.Helper()
	status, _ := readResponse(t, resp)
	assertStatus(t, status, http.StatusSeeOther)
	if loc := resp.Header.Get("Location"); loc != RouteAdmin {
		t.Errorf("Location = %q; want %q", loc, RouteAdmin)
	}
}
