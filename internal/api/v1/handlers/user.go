package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/internal/models"
	"taskman/pkg/logger"
)

// User handlers

// GetAllUsers mengembalikan daftar username, hanya untuk admin.
// Password tidak pernah ikut dikembalikan.
func GetAllUsers(c *fiber.Ctx) error {
	// Ambil role dari locals
	role := c.Locals("role").(string)

	// Jika role bukan admin, kembalikan status 403 Forbidden
	if role != "admin" {
		logger.SecurityLogger.Warn("Forbidden", zap.String("role", role))
		return c.Status(403).JSON(fiber.Map{
			"message": "Forbidden",
			"success": false,
			"status":  403,
		})
	}

	names, err := config.Users.Usernames()
	if err != nil {
		logger.ErrorLogger.Error("Error fetching users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching users",
			"success": false,
			"status":  500,
		})
	}

	users := make([]models.User, 0, len(names))
	for _, name := range names {
		users = append(users, models.User{Username: name})
	}

	// kembalikan response success
	logger.AuditLogger.Info("Users fetched successfully")
	return c.JSON(fiber.Map{
		"message": "Users fetched successfully",
		"success": true,
		"status":  200,
		"data":    users,
	})
}
