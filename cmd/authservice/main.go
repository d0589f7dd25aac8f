package main

import (
	"log"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-platform/internal/api/http"
	"github.com/spec-kit/event-platform/internal/api/http/handlers"
	"github.com/spec-kit/event-platform/internal/config"
	"github.com/spec-kit/event-platform/internal/ratelimit"
	"github.com/spec-kit/event-platform/internal/repository"
	"github.com/spec-kit/event-platform/internal/repository/memory"
	"github.com/spec-kit/event-platform/internal/server"
	"github.com/spec-kit/event-platform/internal/service"
)

func main() {
	rt, err := server.Bootstrap(config.ServiceAuth)
	if err != nil {
		log.Fatalf("failed to start %s: %v", config.ServiceAuth, err)
	}

	var userRepo repository.UserRepository
	if rt.InMemory() {
		rt.Logger.Warn("using in-memory user store")
		userRepo = memory.NewUserRepository()
	} else {
		userRepo = repository.NewUserRepository(rt.Postgres.PoolHandle())
	}

	limiter := ratelimit.NewLoginLimiter(rt.Redis.Client, ratelimit.Config{
		MaxAttempts: rt.Config.Auth.LoginMaxAttempts,
		Cooldown:    rt.Config.Auth.LoginCooldown(),
	})

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     rt.Tokens,
		Limiter:    limiter,
		Dispatcher: rt.Dispatcher,
		Logger:     rt.Logger,
		BcryptCost: rt.Config.Auth.BcryptCost,
	})

	httptransport.RegisterAuthRoutes(rt.App, httptransport.AuthRoutes{
		Health:         rt.Health,
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: rt.AuthMiddleware,
	})

	rt.Logger.Info("auth service ready", zap.Duration("token_ttl", rt.Tokens.TTL()))
	rt.Run()
}
