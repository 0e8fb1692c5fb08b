// Package main is the entry point for the Pressroom API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pressroom/internal/blog"
	"pressroom/internal/cache"
	"pressroom/internal/config"
	"pressroom/internal/database"
	"pressroom/internal/handlers"
	"pressroom/internal/middleware"
	"pressroom/internal/router"
	"pressroom/internal/seo"
	"pressroom/internal/storage"
	"pressroom/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"image_backend", cfg.ImageBackend,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the initial admin account and default category (no-op once
	// data exists).
	if err := database.Seed(db, cfg.AdminUser, cfg.AdminPass); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey. The API works without it; public reads just go
	// uncached.
	var respCache *cache.ResponseCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, response caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	}

	// Pick the image storage backend. A missing S3 config is tolerated in
	// the default setup; uploads are then disabled.
	var backend storage.Backend
	switch {
	case cfg.ImageBackend == "uploadthing":
		ut, err := storage.NewUploadThing(cfg.UploadThingURL, cfg.UploadThingKey)
		if err != nil {
			slog.Error("failed to initialize uploadthing storage", "error", err)
			os.Exit(1)
		}
		backend = ut
		slog.Info("uploadthing storage connected")
	case cfg.S3Endpoint != "":
		s3Backend, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize s3 storage", "error", err)
			os.Exit(1)
		}
		backend = s3Backend
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	default:
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	// Data stores.
	postStore := store.NewPostStore(db)
	commentStore := store.NewCommentStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	userStore := store.NewUserStore(db)
	imageStore := store.NewImageStore(db)

	// Domain services.
	postSvc := blog.NewPostService(postStore, categoryStore, tagStore)
	commentSvc := blog.NewCommentService(commentStore, postStore)
	categorySvc := blog.NewCategoryService(categoryStore, postStore)
	tagSvc := blog.NewTagService(tagStore)
	statsSvc := blog.NewStatsService(postStore, commentStore, userStore, categoryStore, tagStore)
	imageSvc := blog.NewImageService(imageStore, backend)

	site := seo.Site{
		BaseURL: cfg.BaseURL,
		Name:    cfg.SiteName,
		LogoURL: cfg.LogoURL,
	}

	jwtAuth := middleware.NewAuth(cfg.JWTSecret)

	// Handler groups.
	h := router.Handlers{
		Auth:       handlers.NewAuth(userStore, jwtAuth),
		Posts:      handlers.NewPosts(postSvc, categorySvc, tagSvc, respCache),
		Comments:   handlers.NewComments(commentSvc, postSvc),
		Categories: handlers.NewCategories(categorySvc, respCache),
		Tags:       handlers.NewTags(tagSvc),
		Dashboard:  handlers.NewDashboard(statsSvc),
		SEO:        handlers.NewSEO(postSvc, respCache, site),
		Images:     handlers.NewImages(imageSvc),
	}

	r, limiters := router.New(jwtAuth, h)
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown
	// signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain
	// connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
