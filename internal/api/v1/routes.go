package v1

import (
	"github.com/gofiber/fiber/v2"

	"taskman/internal/api/v1/handlers"
	"taskman/internal/middleware"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Auth
	api.Post("/login", handlers.Login)
	api.Post("/register", middleware.UseToken, handlers.Register)

	// User
	userRoutes := api.Group("/users", middleware.UseToken)
	userRoutes.Get("/", handlers.GetAllUsers)

	// Task (diakses lewat posisi 1-based di file)
	taskRoutes := api.Group("/tasks", middleware.UseToken)
	taskRoutes.Post("/", handlers.CreateTask)
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Get("/:pos", handlers.GetTask)
	taskRoutes.Put("/:pos/complete", handlers.CompleteTask)
	taskRoutes.Put("/:pos", handlers.UpdateTask)
	taskRoutes.Delete("/:pos", handlers.DeleteTask)

	// Report
	reportRoutes := api.Group("/reports", middleware.UseToken)
	reportRoutes.Post("/generate", handlers.GenerateReports)
	reportRoutes.Get("/", handlers.GetReports)
}
