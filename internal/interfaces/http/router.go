package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Horarios-api/internal/application/approval"
	"github.com/jhoicas/Horarios-api/internal/application/auth"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	RestaurantUC   *usecase.RestaurantUseCase
	UserUC         *usecase.UserUseCase
	ScheduleUC     *usecase.ScheduleUseCase
	ShiftUC        *usecase.ShiftUseCase
	AvailabilityUC *usecase.AvailabilityUseCase
	Approval       *approval.Workflow
	Health         *HealthHandler
	JWTSecret      string
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
// La autorización por rol la resuelve el gate en cada caso de uso; aquí solo se resuelve el actor.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(metrics.FiberMiddleware())

	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
		app.Get("/ready", deps.Health.Ready)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.AuthUC, deps.Log))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/join", authHandler.Join)
	authGroup.Post("/register-restaurant", authHandler.RegisterRestaurant)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authHandler.Me)

	// Restaurantes (super-admin)
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC, deps.Approval)
	restaurants := api.Group("/restaurants")
	restaurants.Get("/", restaurantHandler.List)
	restaurants.Get("/pending", restaurantHandler.ListPending)
	restaurants.Post("/", restaurantHandler.Create)
	restaurants.Get("/:id", restaurantHandler.GetByID)
	restaurants.Put("/:id", restaurantHandler.Update)
	restaurants.Delete("/:id", restaurantHandler.Delete)
	restaurants.Post("/:id/approve", restaurantHandler.Approve)
	restaurants.Post("/:id/admins", authHandler.CreateAdmin)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.Approval)
	availabilityHandler := NewAvailabilityHandler(deps.AvailabilityUC)
	api.Get("/users", userHandler.ListAll)
	api.Get("/restaurant/users", userHandler.ListByRestaurant)
	api.Get("/restaurant/users/pending", userHandler.ListPending)
	users := api.Group("/users")
	users.Post("/:id/approve", userHandler.Approve)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/availability", availabilityHandler.ListForUser)

	// Horarios (admin)
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedules := api.Group("/schedules")
	schedules.Get("/", scheduleHandler.List)
	schedules.Post("/", scheduleHandler.Create)
	schedules.Delete("/shifts/:shiftId", scheduleHandler.RemoveShift)
	schedules.Put("/:id", scheduleHandler.Update)
	schedules.Delete("/:id", scheduleHandler.Delete)
	schedules.Get("/:id/summary", scheduleHandler.Summary)
	schedules.Get("/:id/pdf", scheduleHandler.ExportPDF)
	schedules.Post("/:id/shifts/:shiftId", scheduleHandler.AddShift)

	// Turnos (admin)
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts := api.Group("/shifts")
	shifts.Get("/", shiftHandler.List)
	shifts.Post("/", shiftHandler.Create)
	shifts.Put("/:id", shiftHandler.Update)
	shifts.Delete("/:id", shiftHandler.Delete)

	// Empleado
	me := api.Group("/me")
	me.Get("/shifts", shiftHandler.ListMine)
	me.Get("/availability", availabilityHandler.ListMine)
	me.Post("/availability", availabilityHandler.Create)
	me.Put("/availability/:id", availabilityHandler.Update)
	me.Delete("/availability/:id", availabilityHandler.Delete)
}
