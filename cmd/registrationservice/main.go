package main

import (
	"log"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-platform/internal/api/http"
	"github.com/spec-kit/event-platform/internal/api/http/handlers"
	"github.com/spec-kit/event-platform/internal/clients/eventclient"
	"github.com/spec-kit/event-platform/internal/config"
	"github.com/spec-kit/event-platform/internal/repository"
	"github.com/spec-kit/event-platform/internal/repository/memory"
	"github.com/spec-kit/event-platform/internal/server"
	"github.com/spec-kit/event-platform/internal/service"
)

func main() {
	rt, err := server.Bootstrap(config.ServiceRegistration)
	if err != nil {
		log.Fatalf("failed to start %s: %v", config.ServiceRegistration, err)
	}

	var (
		registrationRepo repository.RegistrationRepository
		feedbackRepo     repository.FeedbackRepository
	)
	if rt.InMemory() {
		rt.Logger.Warn("using in-memory registration store")
		registrationRepo = memory.NewRegistrationRepository()
		feedbackRepo = memory.NewFeedbackRepository()
	} else {
		pool := rt.Postgres.PoolHandle()
		registrationRepo = repository.NewRegistrationRepository(pool)
		feedbackRepo = repository.NewFeedbackRepository(pool)
	}

	client := eventclient.New(rt.Config.EventClient)
	rt.Logger.Info("event service client configured",
		zap.String("base_url", rt.Config.EventClient.BaseURL),
		zap.Duration("timeout", rt.Config.EventClient.Timeout()))

	registrationService := service.NewRegistrationService(registrationRepo, client, rt.Dispatcher, rt.Logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, rt.Dispatcher, rt.Logger)

	httptransport.RegisterRegistrationRoutes(rt.App, httptransport.RegistrationRoutes{
		Health:         rt.Health,
		Registrations:  handlers.NewRegistrationsHandler(registrationService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		AuthMiddleware: rt.AuthMiddleware,
	})

	rt.Run()
}
