package http

import (
	"github.com/gofiber/fiber/v3"

	"eventmanager/internal/eventmanager/adapters/http/middleware"
	"eventmanager/internal/eventmanager/app"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(router *fiber.App, auth *app.AuthUseCase, events *app.EventUseCase) {
	authHandler := NewAuthHandler(auth)
	eventHandler := NewEventHandler(events)
	venueHandler := NewVenueHandler()

	// Middleware для всех запросов.
	router.Use(middleware.NewLoggerMiddleware())
	router.Use(middleware.NewRecoveryMiddleware())

	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/session", authHandler.Session)

	eventRoutes := apiV1.Group("/events")
	eventRoutes.Post("/", eventHandler.Create)
	eventRoutes.Get("/", eventHandler.List)
	eventRoutes.Get("/upcoming", eventHandler.Upcoming)
	eventRoutes.Get("/past", eventHandler.Past)
	eventRoutes.Get("/:event_id", eventHandler.Get)
	eventRoutes.Put("/:event_id", eventHandler.Update)
	eventRoutes.Delete("/:event_id", eventHandler.Delete)

	apiV1.Get("/venues", venueHandler.List)

	// Обработчик для несуществующих маршрутов.
	router.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
