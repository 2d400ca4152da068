package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskman/internal/config"
	"taskman/pkg/logger"
)

// Report handlers

const (
	taskReportCacheKey = "report:task"
	userReportCacheKey = "report:user"
)

// GenerateReports menghitung ulang statistik dan menulis ulang kedua
// file report secara utuh. Hanya admin yang boleh memanggil.
func GenerateReports(c *fiber.Ctx) error {
	// ambil role dari locals
	role := c.Locals("role").(string)
	if role != "admin" {
		logger.SecurityLogger.Warn("Non-admin tried to generate reports", zap.String("role", role))
		return c.Status(403).JSON(fiber.Map{
			"message": "Forbidden",
			"success": false,
			"status":  403,
		})
	}

	stats, userStats, err := config.Reports.Generate()
	if err != nil {
		logger.ErrorLogger.Error("Error generating reports", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating reports",
			"success": false,
			"status":  500,
		})
	}

	// Report berubah: buang cache lama
	if config.RedisClient != nil {
		config.RedisClient.Del(config.Ctx, taskReportCacheKey, userReportCacheKey)
	}

	logger.AuditLogger.Info("Reports generated via API", zap.Int("total_tasks", stats.TotalTasks))
	return c.JSON(fiber.Map{
		"message": "Reports generated successfully",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"task_overview": stats,
			"user_overview": userStats,
		},
	})
}

// GetReports mengembalikan isi kedua file report sebagai teks. Jika
// file belum ada, report di-generate lebih dulu. Hasil di-cache di
// Redis selama 1 jam jika Redis aktif.
func GetReports(c *fiber.Ctx) error {
	// Coba ambil dari cache Redis
	if config.RedisClient != nil {
		taskText, errTask := config.RedisClient.Get(config.Ctx, taskReportCacheKey).Result()
		userText, errUser := config.RedisClient.Get(config.Ctx, userReportCacheKey).Result()
		if errTask == nil && errUser == nil {
			logger.AuditLogger.Info("Reports fetched (from cache)")
			return c.JSON(fiber.Map{
				"message": "Reports fetched (from cache)",
				"success": true,
				"status":  200,
				"data": fiber.Map{
					"task_overview": taskText,
					"user_overview": userText,
				},
			})
		}
	}

	taskText, userText, err := config.Reports.Read()
	if err != nil {
		logger.ErrorLogger.Error("Error reading reports", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error reading reports",
			"success": false,
			"status":  500,
		})
	}

	// Simpan ke cache selama 1 jam
	if config.RedisClient != nil {
		config.RedisClient.SetEX(config.Ctx, taskReportCacheKey, taskText, time.Hour)
		config.RedisClient.SetEX(config.Ctx, userReportCacheKey, userText, time.Hour)
	}

	logger.AuditLogger.Info("Reports fetched successfully")
	return c.JSON(fiber.Map{
		"message": "Reports fetched successfully",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"task_overview": taskText,
			"user_overview": userText,
		},
	})
}
