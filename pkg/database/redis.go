package database

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"taskman/configs"
	"taskman/internal/config"
	"taskman/pkg/logger"
)

// ConnectRedis membuka koneksi Redis untuk cache report. Jika
// RedisHost kosong, cache dimatikan dan fungsi mengembalikan nil;
// semua pemakai wajib melakukan nil check.
func ConnectRedis(cfg configs.Config) *redis.Client {
	if cfg.RedisHost == "" {
		logger.SystemLogger.Info("Redis host not configured, report caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: "",
		DB:       0,
	})
	if err := client.Ping(config.Ctx).Err(); err != nil {
		logger.ErrorLogger.Error("Redis connection error", zap.Error(err))
		logger.SystemLogger.Warn("Could not connect to Redis, report caching disabled")
		return nil
	}
	return client
}
