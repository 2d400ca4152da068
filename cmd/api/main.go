package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"taskman/configs"
	v1 "taskman/internal/api/v1"
	"taskman/internal/config"
	"taskman/internal/middleware"
	"taskman/internal/report"
	"taskman/internal/store"
	myws "taskman/internal/websocket"
	"taskman/pkg/database"
	"taskman/pkg/logger"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()

	// ----- Inisialisasi store ----- //
	// File kredensial dibuat dengan admin default jika belum ada.
	users, err := store.OpenCredentialStore(cfg.UserPath())
	if err != nil {
		logger.ErrorLogger.Error("Cannot open credential store", zap.Error(err))
		log.Fatalf("Cannot open credential store: %v", err)
	}
	config.Users = users
	config.Tasks = store.NewTaskStore(cfg.TaskPath(), users)
	config.Reports = report.NewGenerator(config.Tasks, users, cfg.TaskReportPath(), cfg.UserReportPath())

	logger.SystemLogger.Info("Stores ready",
		zap.String("user_file", cfg.UserPath()), zap.String("task_file", cfg.TaskPath()))

	// Inisialisasi Redis untuk cache report (opsional)
	config.RedisClient = database.ConnectRedis(cfg)
	if config.RedisClient != nil {
		defer config.RedisClient.Close()
	}

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Daftarkan route API v1
	v1.RegisterRoutes(app)

	// WebSocket: broadcast event mutasi task ke semua klien
	hub := myws.NewHub()
	go hub.Run()
	config.Hub = hub
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := &myws.Client{Conn: c}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
