// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/shopkit/internal/auth"
	"github.com/olegiv/shopkit/internal/cache"
	"github.com/olegiv/shopkit/internal/config"
	"github.com/olegiv/shopkit/internal/content"
	"github.com/olegiv/shopkit/internal/editor"
	"github.com/olegiv/shopkit/internal/handler"
	"github.com/olegiv/shopkit/internal/imaging"
	"github.com/olegiv/shopkit/internal/logging"
	"github.com/olegiv/shopkit/internal/middleware"
	"github.com/olegiv/shopkit/internal/render"
	"github.com/olegiv/shopkit/internal/scheduler"
	"github.com/olegiv/shopkit/internal/session"
	"github.com/olegiv/shopkit/internal/store"
	"github.com/olegiv/shopkit/internal/version"
	"github.com/olegiv/shopkit/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Cache lifetimes for file routes, in seconds.
const (
	staticMaxAge = 86400  // 1 day
	imagesMaxAge = 604800 // 1 week
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	hashPassword := flag.Bool("hash-password", false, "Read a password from stdin and print its argon2id hash")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "shopkit - storefront and content editor for a small business\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_SESSION_SECRET         Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_ENV                    Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_SERVER_PORT            Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_STORAGE_BACKEND        sqlite|redis|memory (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_DB_PATH                SQLite database path (default: ./data/shopkit.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_REDIS_URL              Redis URL (redis backend)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_STORAGE_KEY            Content document key (default: coffeeShopCMSData)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_EDITOR_PASSWORD_HASH   argon2id hash protecting /admin (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_TRUSTED_ORIGINS        Extra origins allowed to post to /admin, comma separated\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_IMAGES_DIR             Directory served at /images (default: ./images)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_EVENT_RETENTION_DAYS   Days of event log to keep, 0 keeps all (default: 30)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_EVENT_PRUNE_SCHEDULE   Cron schedule for event log pruning (default: @daily)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOPKIT_DOCUMENT_CACHE_TTL     Document cache TTL, 0 disables (default: 30s)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("shopkit %s\n", version.New(appVersion, appGitCommit, appBuildTime))
		os.Exit(0)
	}

	if *hashPassword {
		if err := printPasswordHash(os.Stdin, os.Stdout); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// printPasswordHash reads one line from in and writes its argon2id hash to out.
func printPasswordHash(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("empty password")
	}

	hash, err := auth.HashArgon2(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.New(appVersion, appGitCommit, appBuildTime)

	logLevel := logging.ParseLevel(cfg.LogLevel)
	asJSON := !cfg.IsDevelopment()
	logger := logging.New(os.Stdout, logLevel, asJSON, nil)
	slog.SetDefault(logger)

	slog.Info("opening storage", "backend", cfg.StorageBackend)
	storage, err := store.Open(store.Options{
		Backend:          cfg.StorageBackend,
		DBPath:           cfg.DBPath,
		RedisURL:         cfg.RedisURL,
		RedisPrefix:      cfg.RedisPrefix,
		MaxDocumentBytes: cfg.MaxDocumentBytes,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()

	// Upgrade logger to also write WARN and ERROR logs to the event log
	if storage.Events != nil {
		logger = logging.New(os.Stdout, logLevel, asJSON, storage.Events)
		slog.SetDefault(logger)
		slog.Info("event log integration enabled", "min_level", "warn")

		if cfg.EventRetentionDays > 0 {
			retention := time.Duration(cfg.EventRetentionDays) * 24 * time.Hour
			sched := scheduler.New(logger)
			sched.PruneEvents(storage.Events, retention)
			if err := sched.AddEventPrune(cfg.EventPruneSchedule, storage.Events, retention); err != nil {
				return fmt.Errorf("scheduling event log pruning: %w", err)
			}
			sched.Start()
			defer sched.Stop()
		}
	}

	if cfg.EditorAuthEnabled() {
		if err := auth.ValidateHash(cfg.EditorPasswordHash); err != nil {
			return fmt.Errorf("invalid SHOPKIT_EDITOR_PASSWORD_HASH: %w", err)
		}
	} else {
		slog.Warn("editor is not password protected; set SHOPKIT_EDITOR_PASSWORD_HASH", "category", "auth")
	}

	// Sessions share the SQLite database when there is one
	sessionManager := session.New(storage.DB, cfg.IsDevelopment())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	var documents content.Store = storage.Documents
	if cfg.DocumentCacheTTL > 0 {
		documentCache := cache.NewMemoryCache(cache.MemoryCacheOptions{
			DefaultTTL:      cfg.DocumentCacheTTL,
			CleanupInterval: time.Minute,
		})
		defer func() { _ = documentCache.Close() }()
		documents = cache.NewDocumentCache(storage.Documents, documentCache, cfg.DocumentCacheTTL)
		slog.Info("document cache enabled", "ttl", cfg.DocumentCacheTTL)
	}

	model := content.NewModel(documents, content.Options{
		Key:    cfg.StorageKey,
		Logger: logger,
	})

	editorHandler := handler.NewEditorHandler(handler.EditorConfig{
		Model:  model,
		Images: imaging.NewEncoder(cfg.ImageMaxDimension, cfg.ImageMaxUploadBytes),
		Options: editor.Options{
			MaxMenuRows: cfg.MaxMenuRows,
			Logger:      logger,
		},
		Renderer:       renderer,
		SessionManager: sessionManager,
		// One image plus the form, which may carry earlier uploads inline.
		MaxRequestBytes: cfg.ImageMaxUploadBytes + 2*int64(cfg.MaxDocumentBytes),
	})
	storefrontHandler := handler.NewStorefrontHandler(model, renderer)
	healthHandler := handler.NewHealthHandler(model, versionInfo)

	editorAuth := middleware.NewEditorAuth(middleware.DefaultEditorAuthConfig(cfg.EditorPasswordHash))
	csrfConfig := middleware.NewCSRFConfig([]byte(cfg.SessionSecret), cfg.ServerPort, cfg.IsDevelopment(), cfg.TrustedOrigins)
	csrfConfig.ErrorHandler = http.HandlerFunc(editorHandler.Rejected)
	csrfMiddleware := middleware.CSRF(csrfConfig)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Compress(middleware.DefaultCompressMinSize))

	r.Get(handler.RouteHealth, healthHandler.Health)

	// Page routes carry the session for flash messages and the editor draft
	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)

		r.Get(handler.RouteRoot, storefrontHandler.Show)

		r.Group(func(r chi.Router) {
			r.Use(editorAuth.Middleware())
			r.Use(csrfMiddleware)

			r.Get(handler.RouteAdmin, editorHandler.Show)
			r.Post(handler.RouteAdmin, editorHandler.Submit)
			r.Post(handler.RouteAdminReset, editorHandler.Reset)
		})
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticAge := staticMaxAge
	if cfg.IsDevelopment() {
		staticAge = 0
	}
	r.Handle(handler.RouteStatic, middleware.StaticCache(staticAge)(
		http.StripPrefix(handler.RouteStaticStrip, http.FileServer(http.FS(staticFS)))))

	// Default content references images/..., served from the images directory
	placeholder, err := fs.ReadFile(staticFS, "img/placeholder.svg")
	if err != nil {
		return fmt.Errorf("reading image placeholder: %w", err)
	}
	imageHandler := handler.NewImageHandler(os.DirFS(cfg.ImagesDir), placeholder)
	r.Handle(handler.RouteImages, middleware.StaticCache(imagesMaxAge)(
		http.StripPrefix(handler.RouteImagesStrip, imageHandler)))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
