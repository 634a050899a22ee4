// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// placeholderExts are the requests answered with the placeholder when the
// file is missing.
var placeholderExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

// ImageHandler serves the images directory. Default content points at
// images/*.jpg; when such a file has not been supplied the placeholder is
// served instead of a 404.
type ImageHandler struct {
	files       fs.FS
	fileServer  http.Handler
	placeholder []byte
}

// NewImageHandler creates an ImageHandler over files. placeholder is SVG.
func NewImageHandler(files fs.FS, placeholder []byte) *ImageHandler {
	return &ImageHandler{
		files:       files,
		fileServer:  http.FileServerFS(files),
		placeholder: placeholder,
	}
}

// ServeHTTP expects the /images/ prefix to be stripped already.
func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

	if info, err := fs.Stat(h.files, name); err == nil && !info.IsDir() {
		h.fileServer.ServeHTTP(w, r)
		return
	}
	if name == "" || !placeholderExts[strings.ToLower(path.Ext(name))] {
		http.NotFound(w, r)
		return
	}

	// Not cached: the real file may be added later.
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(h.placeholder)
}
