package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/chamados/internal/api/http"
	"github.com/spec-kit/chamados/internal/api/http/handlers"
	"github.com/spec-kit/chamados/internal/cache"
	"github.com/spec-kit/chamados/internal/config"
	"github.com/spec-kit/chamados/internal/events"
	"github.com/spec-kit/chamados/internal/observability"
	"github.com/spec-kit/chamados/internal/persistence"
	"github.com/spec-kit/chamados/internal/repository"
	"github.com/spec-kit/chamados/internal/service"
	"github.com/spec-kit/chamados/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base, err := persistence.LoadSeed()
	if err != nil {
		logger.Fatal("failed to load seed", zap.Error(err))
	}
	initial := persistence.GenerateChamados(base, cfg.Mock.SeedCount, persistence.GeneratorOptions{
		RandomSeed: cfg.Mock.RandomSeed,
		Now:        time.Now(),
	})
	chamadoRepo := repository.NewMemoryChamadoRepository(initial)
	logger.Info("store seeded", zap.Int("chamados", len(initial)), zap.Int64("random_seed", cfg.Mock.RandomSeed))

	searchCache := cache.NewNoopSearchCache()
	var redis *persistence.Redis
	if cfg.Cache.Enabled {
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		searchCache = cache.NewRedisSearchCache(redis.Client, cfg.Cache.KeyPrefix, cfg.Cache.TTL())
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartCacheInvalidationWorker(service.NewCacheInvalidator(dispatcher, searchCache, logger))
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	chamadoService := service.NewChamadoService(service.ChamadoDependencies{
		ChamadoRepo: chamadoRepo,
		Cache:       searchCache,
		Latency:     service.NewLatency(cfg.Mock.Latency()),
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, chamadoRepo, redis, metrics),
		Chamados:  handlers.NewChamadosHandler(chamadoService),
		Dashboard: handlers.NewDashboardHandler(chamadoService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(5 * time.Second)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
