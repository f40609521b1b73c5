package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/cache"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/config"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/engine"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/logger"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/refresher"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/snapshot"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/source"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to yaml config (optional)")
	flag.Parse()

	// Load configuration
	_, statErr := os.Stat(*configPath)
	cfg, err := config.Load(*configPath, statErr != nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg, log); err != nil {
		log.Error("omnibet exited", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log *zap.Logger) error {
	log.Info("starting omnibet",
		zap.String("addr", cfg.Server.Addr),
		zap.String("source", cfg.Source.Kind),
		zap.Strings("sports", cfg.Sports.Available))

	loc, err := cfg.Engine.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	store := snapshot.NewStore()

	// Upstream odds source
	var src source.MatchupSource
	switch cfg.Source.Kind {
	case "postgres":
		pg, err := source.NewPostgresSource(cfg.Postgres)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		log.Info("connected to postgres")
		src = pg
	default:
		src = source.NewOddsAPIClient(cfg.Upstream, source.ClientOptions{
			Location: loc,
			Metrics:  m,
			Logger:   log.Named("upstream"),
		})
	}

	// Snapshot cache for warm starts
	var snapshotCache refresher.SnapshotCache
	if cfg.Redis.Enabled {
		rc, closeRedis, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, running without snapshot cache", zap.Error(err))
		} else {
			defer closeRedis()
			snapshotCache = rc
			warmStart(ctx, rc, store, m, log)
		}
	}

	aggregator := source.NewAggregator(src, cfg.Sports.Available, m, log.Named("aggregator"))
	ref, err := refresher.New(refresher.Config{
		Schedule: cfg.Refresh.Schedule,
		Timeout:  cfg.Refresh.Timeout,
	}, aggregator, store, snapshotCache, m, log.Named("refresher"))
	if err != nil {
		return err
	}
	if err := ref.Start(ctx); err != nil {
		return err
	}
	defer ref.Stop()

	eng := engine.New(engine.Config{
		MatchupsPerPage: cfg.Engine.MatchupsPerPage,
		Location:        loc,
	})
	handler := handlers.NewHandler(store, eng, cfg.Sports.Available, cfg.Engine.DefaultStake, m, log.Named("http"))

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Named("access")))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	handler.Routes(r)
	r.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("omnibet listening", zap.String("addr", cfg.Server.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		log.Info("shutdown signal received")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
	}

	log.Info("shutdown complete")
	return nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*cache.RedisCache, func() error, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	rc := cache.NewRedisCache(client, cfg.SnapshotTTL)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Ping(pingCtx); err != nil {
		client.Close()
		return nil, nil, err
	}

	return rc, client.Close, nil
}

// warmStart publishes the cached snapshot so requests can be served before
// the first fetch cycle completes
func warmStart(ctx context.Context, rc *cache.RedisCache, store *snapshot.Store, m *metrics.Metrics, log *zap.Logger) {
	snap, err := rc.Load(ctx)
	switch {
	case errors.Is(err, cache.ErrMiss):
		log.Info("no cached snapshot")
	case err != nil:
		log.Warn("failed to load cached snapshot", zap.Error(err))
	case store.Restore(snap):
		m.RecordSnapshot(snap.Len())
		log.Info("restored cached snapshot",
			zap.String("snapshot_id", snap.ID.String()),
			zap.Time("fetched_at", snap.FetchedAt),
			zap.Int("matchups", snap.Len()))
	}
}
