package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"twitterclone/backend/internal/config"
	"twitterclone/backend/internal/database"
	"twitterclone/backend/internal/feed"
	"twitterclone/backend/internal/graph"
	"twitterclone/backend/internal/handler"
	"twitterclone/backend/internal/loader"
	"twitterclone/backend/internal/preview"
	"twitterclone/backend/internal/service"
	"twitterclone/backend/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "twitterclone/backend/docs" // This is important for swag to find the generated docs
)

// @title           Twitter Clone API
// @version         1.0
// @description     GraphQL backend of the Twitter clone.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsRelease() && cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in release mode")
	}
	gin.SetMode(cfg.GinMode)

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database
	db := database.Connect(cfg.DatabaseURL)
	s := store.New(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := preview.NewQueue(preview.LogFetcher{Log: logger}, s, preview.Options{
		Workers:   cfg.PreviewWorkers,
		QueueSize: cfg.PreviewQueueSize,
		Timeout:   cfg.PreviewTimeout,
	}, logger)
	go func() {
		if err := queue.Run(ctx); err != nil {
			logger.Error("preview queue stopped", "error", err)
		}
	}()

	resolver := graph.NewResolver(
		s,
		feed.NewEngine(db, s),
		service.NewTweetService(s, queue, logger),
		service.NewSocialService(s),
		service.NewAuthService(s, cfg.JWTSecret, cfg.TokenTTL),
	)
	schema, err := graph.NewSchema(resolver, cfg.GraphQLMaxParallelism)
	if err != nil {
		log.Fatalf("Failed to parse GraphQL schema: %v", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Schema:        schema,
		Source:        s,
		LoaderOptions: loader.Options{Wait: cfg.LoaderWait, MaxBatch: cfg.LoaderMaxBatch},
		JWTSecret:     cfg.JWTSecret,
		Log:           logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server is running", "addr", srv.Addr)
		logger.Info("swagger UI is available", "url", "http://localhost:"+cfg.Port+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsRelease() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
