package server

import (
	"github.com/kasirapp/user-api/internal/response"
	"github.com/kasirapp/user-api/internal/role"
	"github.com/kasirapp/user-api/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware. The cors middleware also answers OPTIONS preflights.
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "User API is running",
		})
	})

	// ==========================================
	// USER MANAGEMENT
	// ==========================================
	// One resource path, dispatched by HTTP method.
	app.Get("/api/users", user.ListUsersHandler)
	app.Post("/api/users", user.CreateUserHandler)
	app.Put("/api/users", user.UpdateUserHandler)
	app.Delete("/api/users", user.DeleteUserHandler)
	app.Patch("/api/users", user.PatchUserHandler)
	app.All("/api/users", func(c *fiber.Ctx) error {
		return response.MethodNotAllowed(c)
	})

	// ==========================================
	// ROLE LOOKUP (read-only)
	// ==========================================
	app.Get("/api/roles", role.ListRolesHandler)
}
