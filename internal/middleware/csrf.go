// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for the editor's cross-origin protection.
// filippo.io/csrf/gorilla checks Fetch metadata headers, so forms carry no token field.
type CSRFConfig struct {
	// AuthKey is a 32-byte key; the session secret is used.
	AuthKey []byte

	// TrustedOrigins are host[:port] values allowed to post cross-origin,
	// e.g. a public hostname in front of a proxy that rewrites Host.
	TrustedOrigins []string

	// ErrorHandler answers rejected requests. A plain 403 when nil.
	ErrorHandler http.Handler
}

// NewCSRFConfig builds the editor's CSRF configuration. trusted entries may
// be written as URLs; they are reduced to host[:port]. In development the
// listen port on localhost and 127.0.0.1 is trusted too.
func NewCSRFConfig(authKey []byte, port int, isDev bool, trusted []string) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}

	for _, o := range trusted {
		if host := originHost(o); host != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, host)
		}
	}
	if isDev {
		p := strconv.Itoa(port)
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, "localhost:"+p, "127.0.0.1:"+p)
	}

	slices.Sort(cfg.TrustedOrigins)
	cfg.TrustedOrigins = slices.Compact(cfg.TrustedOrigins)
	return cfg
}

// originHost turns "https://Shop.Example.com/" into "shop.example.com".
func originHost(origin string) string {
	o := strings.ToLower(strings.TrimSpace(origin))
	if _, rest, ok := strings.Cut(o, "://"); ok {
		o = rest
	}
	o, _, _ = strings.Cut(o, "/")
	return o
}

// CSRF returns a middleware that rejects cross-origin unsafe requests.
// Every rejection is logged before ErrorHandler runs.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	onReject := cfg.ErrorHandler
	if onReject == nil {
		onReject = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Forbidden - cross-origin request rejected", http.StatusForbidden)
		})
	}

	opts := []csrf.Option{csrf.ErrorHandler(logRejection(onReject))}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func logRejection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reason := "unknown"
		if err := csrf.FailureReason(r); err != nil {
			reason = err.Error()
		}
		slog.Warn("cross-origin editor request rejected",
			"category", "auth",
			"reason", reason,
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		)
		next.ServeHTTP(w, r)
	})
}
