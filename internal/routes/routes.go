package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/shotstreak/shotstreak-backend/internal/config"
	"github.com/shotstreak/shotstreak-backend/internal/handlers"
	"github.com/shotstreak/shotstreak-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	trainingHandler *handlers.TrainingHandler,
	statsHandler *handlers.StatsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth/profile routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)
	api.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Put("/me/settings", middleware.JWTProtected(cfg), authHandler.UpdateSettings)

	// Training days and activities (JWT required)
	training := api.Group("/training", middleware.JWTProtected(cfg))
	training.Get("/days", trainingHandler.ListDays)
	training.Get("/days/:date", trainingHandler.GetDay)
	training.Put("/days/:date", trainingHandler.UpdateDay)
	training.Post("/days/:date/planned", trainingHandler.AddPlanned)
	training.Post("/days/:date/actual", trainingHandler.LogActual)
	training.Put("/days/:date/makes", trainingHandler.QuickMakes)
	training.Delete("/planned/:id", trainingHandler.DeletePlanned)
	training.Put("/actual/:id", trainingHandler.UpdateActual)

	// Derived statistics (JWT required)
	stats := api.Group("/stats", middleware.JWTProtected(cfg))
	stats.Get("/streak", statsHandler.GetStreak)
	stats.Get("/weekly", statsHandler.GetWeekly)
	stats.Get("/summary", statsHandler.GetSummary)
}
