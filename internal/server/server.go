package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-platform/internal/api/http"
	"github.com/spec-kit/event-platform/internal/api/http/handlers"
	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/config"
	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/observability"
	"github.com/spec-kit/event-platform/internal/persistence"
	"github.com/spec-kit/event-platform/internal/service"
	"github.com/spec-kit/event-platform/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Runtime holds the infrastructure shared by every service binary.
type Runtime struct {
	Config         *config.Config
	Logger         *zap.Logger
	Postgres       *persistence.Postgres
	// Redis is only connected for the auth service, which throttles logins.
	Redis          *persistence.Redis
	Metrics        *observability.Metrics
	Tokens         *auth.TokenManager
	AuthMiddleware *auth.AuthMiddleware
	Dispatcher     events.Dispatcher
	Health         *handlers.HealthHandler
	App            *fiber.App

	notifications *worker.NotificationWorker
	cancel        context.CancelFunc
}

// Bootstrap loads configuration for the named service and connects its
// dependencies. Callers register routes on App and then call Run.
func Bootstrap(serviceName string) (*Runtime, error) {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	rt := &Runtime{Config: cfg, Logger: logger, cancel: cancel}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	rt.Postgres = pg

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			rt.Close()
			return nil, err
		}
	}

	if serviceName == config.ServiceAuth {
		rt.Redis = persistence.NewRedis(ctx, cfg.Redis, logger)
	}

	rt.Tokens, err = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.AuthMiddleware = auth.NewAuthMiddleware(rt.Tokens, logger)
	rt.Metrics = observability.NewMetrics(serviceName)

	rt.Dispatcher = events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(logger, cfg.Notification)
	rt.notifications = worker.StartNotificationWorker(ctx, rt.Dispatcher, notificationService, logger)

	rt.Health = handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readinessDependencies(rt.Postgres, rt.Redis))

	rt.App = httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(rt.App, logger, rt.Metrics, cfg.App.RequestTimeout())
	return rt, nil
}

// InMemory reports whether repositories must fall back to process memory
// because no database is configured.
func (rt *Runtime) InMemory() bool {
	return rt.Postgres.PoolHandle() == nil
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (rt *Runtime) Run() {
	defer rt.Close()

	go func() {
		rt.Logger.Info("listening", zap.String("addr", rt.Config.App.Addr()))
		if err := rt.App.Listen(rt.Config.App.Addr()); err != nil {
			rt.Logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(rt.Logger)

	if err := rt.App.ShutdownWithTimeout(shutdownTimeout); err != nil {
		rt.Logger.Warn("shutdown", zap.Error(err))
	}
}

// Close releases connections and stops the notification worker.
func (rt *Runtime) Close() {
	if rt.cancel != nil {
		rt.cancel()
	}
	rt.notifications.Wait()
	rt.Redis.Close()
	rt.Postgres.Close()
	if rt.Logger != nil {
		_ = rt.Logger.Sync()
	}
}

// readinessDependencies returns the connections a service must reach before it
// reports ready. Unconfigured ones are left out.
func readinessDependencies(pg *persistence.Postgres, rdb *persistence.Redis) map[string]handlers.Pinger {
	dependencies := map[string]handlers.Pinger{}
	if pg.PoolHandle() != nil {
		dependencies["postgres"] = pg
	}
	if rdb != nil && rdb.Client != nil {
		dependencies["redis"] = rdb
	}
	return dependencies
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
