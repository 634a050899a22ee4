// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/shopkit/internal/auth"
)

// maxTrackedIPs bounds the failure limiter cache between cleanups.
const maxTrackedIPs = 10000

// EditorAuthConfig holds configuration for editor authentication.
type EditorAuthConfig struct {
	// PasswordHash is an argon2id hash. An empty hash disables authentication.
	PasswordHash string
	// Realm is sent in the WWW-Authenticate challenge.
	Realm string
	// FailureRate is how many failed attempts per second an IP regains (default: 0.1).
	FailureRate float64
	// FailureBurst is how many failed attempts an IP may make before it is blocked (default: 5).
	FailureBurst int
}

// DefaultEditorAuthConfig returns sensible defaults for the given hash.
func DefaultEditorAuthConfig(passwordHash string) EditorAuthConfig {
	return EditorAuthConfig{
		PasswordHash: passwordHash,
		Realm:        "shopkit editor",
		FailureRate:  0.1, // one attempt back every 10 seconds
		FailureBurst: 5,
	}
}

// EditorAuth protects the editor with HTTP Basic authentication. Only failed
// attempts consume an IP's budget; once it is spent the IP gets 429 until the
// limiter refills.
type EditorAuth struct {
	passwordHash string
	realm        string
	failures     *limiterCache[string]
}

// NewEditorAuth creates a new EditorAuth.
func NewEditorAuth(cfg EditorAuthConfig) *EditorAuth {
	if cfg.Realm == "" {
		cfg.Realm = "shopkit editor"
	}
	if cfg.FailureRate <= 0 {
		cfg.FailureRate = 0.1
	}
	if cfg.FailureBurst <= 0 {
		cfg.FailureBurst = 5
	}

	if cfg.PasswordHash != "" && auth.NeedsRehash(cfg.PasswordHash) {
		slog.Warn("editor password hash uses outdated argon2 parameters; regenerate it with -hash-password",
			"category", "auth")
	}

	return &EditorAuth{
		passwordHash: cfg.PasswordHash,
		realm:        cfg.Realm,
		failures:     newLimiterCache[string](cfg.FailureRate, cfg.FailureBurst),
	}
}

// Enabled reports whether a password is configured.
func (a *EditorAuth) Enabled() bool {
	return a.passwordHash != ""
}

// Middleware returns HTTP middleware enforcing the editor password.
func (a *EditorAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !a.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiter := a.failures.get(ip)

			if tokens := limiter.Tokens(); tokens < 1 {
				wait := time.Duration(math.Ceil((1-tokens)/float64(limiter.Limit()))) * time.Second
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())))
				slog.Warn("editor login rate limit exceeded", "category", "auth", "ip", ip)
				http.Error(w, "Too many failed login attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}

			_, password, ok := r.BasicAuth()
			if ok {
				match, err := auth.VerifyArgon2(password, a.passwordHash)
				if err != nil {
					slog.Error("verifying editor password", "category", "auth", "error", err)
				}
				if match {
					next.ServeHTTP(w, r)
					return
				}

				limiter.Allow()
				if a.failures.clearIfExceeds(maxTrackedIPs) {
					slog.Info("cleared editor login limiters due to size")
				}
				slog.Warn("editor login failed", "category", "auth", "ip", ip)
			}

			w.Header().Set("WWW-Authenticate", `Basic realm="`+a.realm+`", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}
