package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/api/http/handlers"
	"github.com/spec-kit/event-platform/internal/auth"
)

// AuthRoutes bundles dependencies for the auth service.
type AuthRoutes struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// EventRoutes bundles dependencies for the event service.
type EventRoutes struct {
	Health         *handlers.HealthHandler
	Events         *handlers.EventsHandler
	Budgets        *handlers.BudgetsHandler
	Planners       *handlers.PlannersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegistrationRoutes bundles dependencies for the registration service.
type RegistrationRoutes struct {
	Health         *handlers.HealthHandler
	Registrations  *handlers.RegistrationsHandler
	Feedback       *handlers.FeedbackHandler
	AuthMiddleware *auth.AuthMiddleware
}

func registerHealth(app *fiber.App, h *handlers.HealthHandler) {
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)
}

// RegisterAuthRoutes wires the auth service routes. Register and login are open;
// the verifier still rejects a bad bearer token on them.
func RegisterAuthRoutes(app *fiber.App, cfg AuthRoutes) {
	registerHealth(app, cfg.Health)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)
	api.Get("/me", auth.RequireAnyRole(), cfg.Users.Me)
	api.Get("/users/:email", auth.RequireAnyRole(), cfg.Users.GetUser)
}

// RegisterEventRoutes wires the event service routes.
func RegisterEventRoutes(app *fiber.App, cfg EventRoutes) {
	registerHealth(app, cfg.Health)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	staff := auth.RequireStaff()
	anyRole := auth.RequireAnyRole()

	events := api.Group("/events")
	events.Post("/", staff, cfg.Events.Create)
	events.Get("/", anyRole, cfg.Events.List)
	events.Get("/:id", anyRole, cfg.Events.Get)
	events.Put("/:id", staff, cfg.Events.Update)
	events.Delete("/:id", staff, cfg.Events.Delete)

	budgets := api.Group("/budgets", staff)
	budgets.Post("/", cfg.Budgets.Create)
	budgets.Get("/events/:eventId", cfg.Budgets.ListByEvent)
	budgets.Put("/events/:eventId/allocation", cfg.Budgets.Allocate)
	budgets.Get("/budget/status/:eventId", cfg.Budgets.Status)
	budgets.Get("/:id", cfg.Budgets.Get)
	budgets.Put("/:id", cfg.Budgets.Update)
	budgets.Delete("/:id", cfg.Budgets.Delete)

	planners := api.Group("/planners", staff)
	planners.Post("/", cfg.Planners.Create)
	planners.Get("/event/:eventId", cfg.Planners.ListByEvent)
	planners.Get("/:id", cfg.Planners.Get)
	planners.Put("/:id", cfg.Planners.Update)
	planners.Delete("/:id", cfg.Planners.Delete)
}

// RegisterRegistrationRoutes wires the registration service routes.
func RegisterRegistrationRoutes(app *fiber.App, cfg RegistrationRoutes) {
	registerHealth(app, cfg.Health)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	staff := auth.RequireStaff()
	anyRole := auth.RequireAnyRole()

	registrations := api.Group("/registrations")
	registrations.Post("/", anyRole, cfg.Registrations.Register)
	registrations.Get("/my", anyRole, cfg.Registrations.ListMine)
	registrations.Get("/event/:eventId", staff, cfg.Registrations.ListByEvent)
	registrations.Get("/event/:eventId/count", anyRole, cfg.Registrations.Count)

	for _, prefix := range []string{"/feedback", "/feedbacks"} {
		feedback := api.Group(prefix, anyRole)
		feedback.Post("/", cfg.Feedback.Submit)
		feedback.Get("/", cfg.Feedback.List)
		feedback.Get("/event/:eventId", cfg.Feedback.ListByEvent)
		feedback.Put("/:id", cfg.Feedback.Update)
		feedback.Delete("/:id", cfg.Feedback.Delete)
	}
}
