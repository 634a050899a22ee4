// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DefaultCompressMinSize is the smallest body worth compressing.
const DefaultCompressMinSize = 1024

// gzipWriterPool pools gzip.Writer instances to reduce allocations.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// compressibleContentTypes lists non-text content types that should be compressed.
var compressibleContentTypes = []string{
	"application/javascript",
	"application/json",
	"application/xml",
	"image/svg+xml",
}

// Compress gzip-compresses page, stylesheet and script responses for clients
// that accept it. The response is buffered so the decision can use the final
// Content-Type and size; bodies under minSize are sent as is. Stored pages
// carry uploaded images inline as data URLs, which makes them large.
func Compress(minSize int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r) {
				next.ServeHTTP(w, r)
				return
			}

			bw := &bufferedWriter{ResponseWriter: w, minSize: minSize}
			next.ServeHTTP(bw, r)
			bw.finish()
		})
	}
}

// bufferedWriter holds the response until the handler returns.
type bufferedWriter struct {
	http.ResponseWriter
	minSize    int
	buf        bytes.Buffer
	statusCode int
}

func (bw *bufferedWriter) WriteHeader(statusCode int) {
	if bw.statusCode == 0 {
		bw.statusCode = statusCode
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	if bw.statusCode == 0 {
		bw.statusCode = http.StatusOK
	}
	return bw.buf.Write(b)
}

// finish writes the status and the possibly compressed body.
func (bw *bufferedWriter) finish() {
	if bw.statusCode == 0 {
		bw.statusCode = http.StatusOK
	}

	h := bw.Header()
	compress := bw.buf.Len() >= bw.minSize &&
		h.Get("Content-Encoding") == "" &&
		h.Get("Content-Range") == "" &&
		isCompressible(h.Get("Content-Type"))

	if !compress {
		bw.ResponseWriter.WriteHeader(bw.statusCode)
		_, _ = bw.ResponseWriter.Write(bw.buf.Bytes())
		return
	}

	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
	bw.ResponseWriter.WriteHeader(bw.statusCode)

	gz := gzipWriterPool.Get().(*gzip.Writer)
	gz.Reset(bw.ResponseWriter)
	_, _ = gz.Write(bw.buf.Bytes())
	_ = gz.Close()
	gzipWriterPool.Put(gz)
}

func acceptsGzip(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "gzip") {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

// isCompressible checks if the content type should be compressed.
func isCompressible(contentType string) bool {
	if contentType == "" {
		return false
	}

	// Drop parameters such as charset
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	contentType = strings.ToLower(contentType)

	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	for _, ct := range compressibleContentTypes {
		if contentType == ct {
			return true
		}
	}
	return false
}
