package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/storage"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store *storage.DB
	redis *redis.Client
	http  *http.Server

	warmer    *category.Warmer
	bgCancels []context.CancelFunc
}

// New bootstraps the logger, store, optional Redis and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	checks := []server.Check{{Name: "store", Ping: store.Ping}}

	var (
		redisClient *redis.Client
		cache       category.Cache = category.NopCache{}
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = category.NewRedisCache(redisClient, cfg.Cache.CategoryTTL)
		checks = append(checks, server.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	questionRepo := repository.NewQuestionRepository(store.Store)
	categoryRepo := repository.NewCategoryRepository(store.Store)

	categorySvc := category.NewService(categoryRepo, cache, logger)
	questionSvc := question.NewService(questionRepo, logger)
	selector := quiz.NewSelector(questionRepo, logger, quiz.SelectorOptions{})

	router := server.NewRouter(cfg, logger, server.Handlers{
		Categories: category.NewHTTPHandler(categorySvc),
		Questions:  question.NewHTTPHandler(questionSvc, categorySvc),
		Quiz:       quiz.NewHTTPHandler(selector),
	}, checks...)

	var warmer *category.Warmer
	if redisClient != nil && cfg.Cache.WarmInterval > 0 {
		warmer = category.NewWarmer(categorySvc, cfg.Cache.WarmInterval, logger)
	}

	return &Application{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		redis:     redisClient,
		http:      server.NewHTTPServer(cfg, router),
		warmer:    warmer,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("store shutdown error")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.warmer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("category cache warmer stopped")
			}
		}()
	}
}
