package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres"
	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres/building"
	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres/canonical"
	proposalrepo "github.com/streletskiy/archimap-sub000/internal/adapter/postgres/proposal"
	"github.com/streletskiy/archimap-sub000/internal/adapter/redis/refreshqueue"
	"github.com/streletskiy/archimap-sub000/internal/adapter/search/meili"
	"github.com/streletskiy/archimap-sub000/internal/auth"
	"github.com/streletskiy/archimap-sub000/internal/config"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/service/baseline"
	"github.com/streletskiy/archimap-sub000/internal/service/indexer"
	"github.com/streletskiy/archimap-sub000/internal/service/merge"
	"github.com/streletskiy/archimap-sub000/internal/service/proposal"
	"github.com/streletskiy/archimap-sub000/internal/transport/middleware"
	"github.com/streletskiy/archimap-sub000/internal/transport/rest"
)

type refreshQueue interface {
	Enqueue(ctx context.Context, entities ...domain.EntityID) error
}

// Run starts the moderation API and blocks until ctx is cancelled, then
// drains in-flight requests within the configured shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting moderation api",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	txm := postgres.NewTxManager(pool)
	proposals := proposalrepo.New(pool)
	records := canonical.New(pool)
	buildings := building.New(pool)
	resolver := baseline.NewResolver(logger, records, buildings)

	health := []rest.Check{{Name: "database", Pinger: pool}}

	var refresh refreshQueue = refreshqueue.Noop{}
	if cfg.RefreshQueue.RedisURL != "" {
		queue, err := refreshqueue.New(cfg.RefreshQueue.RedisURL, cfg.RefreshQueue.Key)
		if err != nil {
			return fmt.Errorf("refresh queue: %w", err)
		}
		defer queue.Close()
		refresh = queue
		health = append(health, rest.Check{Name: "refresh_queue", Pinger: queue})
	} else {
		logger.Warn("refresh queue disabled, search index will not follow merges")
	}

	proposalSvc := proposal.NewService(logger, proposals, buildings, resolver, txm, cfg.Moderation)
	mergeSvc := merge.NewService(logger, proposals, records, resolver, refresh, txm)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Proposals:   rest.NewProposalHandler(proposalSvc, logger),
		Merge:       rest.NewMergeHandler(mergeSvc, logger),
		Health:      rest.NewHealthHandler(Version, health...),
		Tokens:      auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		RateLimiter: limiter,
		RateLimit:   cfg.RateLimit,
		CORS:        cfg.CORS,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// RunIndexer drains the search refresh queue into Meilisearch until ctx is
// cancelled.
func RunIndexer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting search indexer",
		slog.String("version", BuildVersion()),
		slog.String("index", cfg.Search.Index),
	)

	if cfg.RefreshQueue.RedisURL == "" {
		return errors.New("indexer: REFRESH_QUEUE_REDIS_URL is required")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	queue, err := refreshqueue.New(cfg.RefreshQueue.RedisURL, cfg.RefreshQueue.Key)
	if err != nil {
		return fmt.Errorf("refresh queue: %w", err)
	}
	defer queue.Close()

	index := meili.New(cfg.Search.MeiliURL, cfg.Search.MeiliAPIKey, cfg.Search.Index, logger)
	if err := index.Configure(); err != nil {
		return err
	}

	x := indexer.New(logger, queue, canonical.New(pool), building.New(pool), index,
		cfg.Search.BatchSize, cfg.Search.PollInterval)
	return x.Run(ctx)
}
