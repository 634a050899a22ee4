// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/shopkit/internal/content"
	"github.com/olegiv/shopkit/internal/editor"
	"github.com/olegiv/shopkit/internal/render"
)

// EditorConfig configures an EditorHandler.
type EditorConfig struct {
	Model          *content.Model
	Images         editor.ImageEncoder
	Options        editor.Options
	Renderer       *render.Renderer
	SessionManager *scs.SessionManager
	// MaxRequestBytes bounds the size of an editor POST body (0 = unlimited).
	MaxRequestBytes int64
}

// EditorHandler serves the content editor. The editor state of each browser
// session lives in the session as a draft between requests.
type EditorHandler struct {
	model           *content.Model
	images          editor.ImageEncoder
	opts            editor.Options
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	maxRequestBytes int64
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(cfg EditorConfig) *EditorHandler {
	return &EditorHandler{
		model:           cfg.Model,
		images:          cfg.Images,
		opts:            cfg.Options,
		renderer:        cfg.Renderer,
		sessionManager:  cfg.SessionManager,
		maxRequestBytes: cfg.MaxRequestBytes,
	}
}

// Show handles GET /admin.
func (h *EditorHandler) Show(w http.ResponseWriter, r *http.Request) {
	e := h.loadEditor(r)
	h.renderEditor(w, r, http.StatusOK, e)
}

// Submit handles POST /admin. The submitted form is applied to the draft
// before the requested action runs, so no edit is lost whichever button
// was pressed.
func (h *EditorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.maxRequestBytes > 0 {
		if r.ContentLength > h.maxRequestBytes {
			flashError(w, r, h.renderer, RouteAdmin, msgUploadTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	}
	if err := r.ParseMultipartForm(defaultMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			flashError(w, r, h.renderer, RouteAdmin, msgUploadTooLarge)
			return
		}
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	e := h.loadEditor(r)
	e.Apply(formValues(r))

	action := r.PostForm.Get(FormAction)
	switch {
	case action == ActionSave:
		h.save(w, r, e)
		return

	case action == ActionAddRow:
		if err := e.AddMenuRow(); err != nil {
			slog.Info("menu row not added", "category", "content", "error", err)
		}

	case strings.HasPrefix(action, ActionRemoveRow):
		i, err := strconv.Atoi(strings.TrimPrefix(action, ActionRemoveRow))
		if err != nil {
			http.Error(w, "Invalid menu row", http.StatusBadRequest)
			return
		}
		if err := e.RemoveMenuRow(i); err != nil {
			http.Error(w, "Invalid menu row", http.StatusBadRequest)
			return
		}

	case strings.HasPrefix(action, ActionUpload):
		target, err := editor.ParseImageTarget(strings.TrimPrefix(action, ActionUpload))
		if err != nil {
			http.Error(w, "Invalid image field", http.StatusBadRequest)
			return
		}
		name, body := uploadedFile(r, target)
		if err := e.UploadImage(r.Context(), target, name, body); err != nil && !errors.Is(err, editor.ErrImageUnreadable) {
			http.Error(w, "Invalid image field", http.StatusBadRequest)
			return
		}

	case strings.HasPrefix(action, ActionClear):
		target, err := editor.ParseImageTarget(strings.TrimPrefix(action, ActionClear))
		if err != nil {
			http.Error(w, "Invalid image field", http.StatusBadRequest)
			return
		}
		if err := e.ClearImage(target); err != nil {
			http.Error(w, "Invalid image field", http.StatusBadRequest)
			return
		}

	case action == "":
		// Plain submit: keep the draft.

	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	if !h.storeEditor(w, r, e) {
		return
	}
	seeOther(w, r, RouteAdmin)
}

// save validates and persists the draft. Validation failures re-render the
// form with 422, storage failures with 503; success redirects back.
func (h *EditorHandler) save(w http.ResponseWriter, r *http.Request, e *editor.Editor) {
	err := e.Save(r.Context())
	if !h.storeEditor(w, r, e) {
		return
	}

	if err == nil {
		seeOther(w, r, RouteAdmin)
		return
	}
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		h.renderEditor(w, r, http.StatusUnprocessableEntity, e)
		return
	}
	h.renderEditor(w, r, http.StatusServiceUnavailable, e)
}

// Reset handles POST /admin/reset.
func (h *EditorHandler) Reset(w http.ResponseWriter, r *http.Request) {
	e := h.loadEditor(r)
	err := e.Reset(r.Context())
	if !h.storeEditor(w, r, e) {
		return
	}

	if err != nil {
		h.renderEditor(w, r, http.StatusServiceUnavailable, e)
		return
	}
	seeOther(w, r, RouteAdmin)
}

// Rejected answers an editor POST refused by cross-origin protection. The
// form is not applied; the editor is shown from the session draft with 403.
func (h *EditorHandler) Rejected(w http.ResponseWriter, r *http.Request) {
	h.renderer.SetFlash(r, msgCrossOrigin, "error")
	h.renderEditor(w, r, http.StatusForbidden, h.loadEditor(r))
}

// loadEditor restores the session draft, or opens a fresh editor on the
// stored content when there is none or it cannot be decoded.
func (h *EditorHandler) loadEditor(r *http.Request) *editor.Editor {
	ctx := r.Context()
	if b := h.sessionManager.GetBytes(ctx, sessionKeyDraft); len(b) > 0 {
		var d editor.Draft
		err := json.Unmarshal(b, &d)
		if err == nil {
			return editor.Restore(h.model, h.images, h.opts, d)
		}
		slog.Warn("discarding unreadable editor draft", "category", "content", "error", err)
		h.sessionManager.Remove(ctx, sessionKeyDraft)
		h.renderer.SetFlash(r, msgDraftDiscarded, "error")
	}

	e := editor.New(h.model, h.images, h.opts)
	e.Open(ctx)
	return e
}

// storeEditor saves the draft in the session. On failure it answers 500 and returns false.
func (h *EditorHandler) storeEditor(w http.ResponseWriter, r *http.Request, e *editor.Editor) bool {
	b, err := json.Marshal(e.Draft())
	if err != nil {
		logAndInternalError(w, "encoding editor draft", "error", err)
		return false
	}
	h.sessionManager.Put(r.Context(), sessionKeyDraft, b)
	return true
}

func (h *EditorHandler) renderEditor(w http.ResponseWriter, r *http.Request, status int, e *editor.Editor) {
	data := render.TemplateData{
		Title: "Content Editor",
		Data:  e.View(),
	}
	if err := h.renderer.RenderStatus(w, r, status, TemplateEditor, data); err != nil {
		logAndInternalError(w, "rendering editor", "error", err)
	}
}

// formValues flattens the submitted text fields, skipping the action.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(r.PostForm))
	for name, v := range r.PostForm {
		if name == FormAction || len(v) == 0 {
			continue
		}
		values[name] = v[0]
	}
	return values
}

// uploadedFile returns the file submitted for target. A missing file yields
// an empty reader, which the encoder rejects like any unreadable image.
func uploadedFile(r *http.Request, target editor.ImageTarget) (string, io.Reader) {
	f, header, err := r.FormFile(FormFilePrefix + string(target))
	if err != nil {
		return "", bytes.NewReader(nil)
	}
	defer func() { _ = f.Close() }()

	// Read the file now so it can be closed here; the encoder bounds its size.
	b, err := io.ReadAll(f)
	if err != nil {
		return header.Filename, bytes.NewReader(nil)
	}
	return header.Filename, bytes.NewReader(b)
}
