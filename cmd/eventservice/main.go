package main

import (
	"log"

	httptransport "github.com/spec-kit/event-platform/internal/api/http"
	"github.com/spec-kit/event-platform/internal/api/http/handlers"
	"github.com/spec-kit/event-platform/internal/config"
	"github.com/spec-kit/event-platform/internal/repository"
	"github.com/spec-kit/event-platform/internal/repository/memory"
	"github.com/spec-kit/event-platform/internal/server"
	"github.com/spec-kit/event-platform/internal/service"
)

func main() {
	rt, err := server.Bootstrap(config.ServiceEvents)
	if err != nil {
		log.Fatalf("failed to start %s: %v", config.ServiceEvents, err)
	}

	var (
		eventRepo   repository.EventRepository
		budgetRepo  repository.BudgetRepository
		plannerRepo repository.PlannerRepository
	)
	if rt.InMemory() {
		rt.Logger.Warn("using in-memory event store")
		eventRepo = memory.NewEventRepository()
		budgetRepo = memory.NewBudgetRepository()
		plannerRepo = memory.NewPlannerRepository()
	} else {
		pool := rt.Postgres.PoolHandle()
		eventRepo = repository.NewEventRepository(pool)
		budgetRepo = repository.NewBudgetRepository(pool)
		plannerRepo = repository.NewPlannerRepository(pool)
	}

	eventService := service.NewEventService(eventRepo, rt.Dispatcher, rt.Logger)
	budgetService := service.NewBudgetService(budgetRepo, eventRepo)
	plannerService := service.NewPlannerService(plannerRepo, eventRepo)

	httptransport.RegisterEventRoutes(rt.App, httptransport.EventRoutes{
		Health:         rt.Health,
		Events:         handlers.NewEventsHandler(eventService),
		Budgets:        handlers.NewBudgetsHandler(budgetService, eventService),
		Planners:       handlers.NewPlannersHandler(plannerService),
		AuthMiddleware: rt.AuthMiddleware,
	})

	rt.Run()
}
