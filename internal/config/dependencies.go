package config

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"taskman/internal/report"
	"taskman/internal/store"
	"taskman/internal/websocket"
)

var (
	// Global dependency yang akan digunakan di seluruh aplikasi
	Users       *store.CredentialStore
	Tasks       *store.TaskStore
	Reports     *report.Generator
	Hub         *websocket.Hub
	SecretKey   = []byte("secret")
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client
)
