// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/olegiv/shopkit/internal/content"
	"github.com/olegiv/shopkit/internal/render"
	"github.com/olegiv/shopkit/internal/storefront"
)

// StorefrontHandler renders the public page from the live record.
type StorefrontHandler struct {
	model    *content.Model
	renderer *render.Renderer
	now      func() time.Time
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(m *content.Model, renderer *render.Renderer) *StorefrontHandler {
	return &StorefrontHandler{
		model:    m,
		renderer: renderer,
		now:      time.Now,
	}
}

// Show handles GET /.
func (h *StorefrontHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := storefront.Project(h.model.Load(r.Context()), h.now())

	data := render.TemplateData{
		Title: page.Title,
		Data:  page,
	}
	if err := h.renderer.Render(w, r, TemplateStorefront, data); err != nil {
		logAndInternalError(w, "rendering storefront", "error", err)
	}
}
