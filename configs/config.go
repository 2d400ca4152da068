package configs

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir        string
	UserFile       string
	TaskFile       string
	TaskReportFile string
	UserReportFile string
	AppPort        int
	RedisHost      string
	RedisPort      int
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	appPort, err := strconv.Atoi(os.Getenv("APP_PORT"))
	if err != nil {
		appPort = 3004
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	return Config{
		DataDir:        dataDir,
		UserFile:       getenvDefault("USER_FILE", "user.txt"),
		TaskFile:       getenvDefault("TASK_FILE", "tasks.txt"),
		TaskReportFile: getenvDefault("TASK_REPORT", "task_overview.txt"),
		UserReportFile: getenvDefault("USER_REPORT", "user_overview.txt"),
		AppPort:        appPort,
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      redisPort,
	}
}

// UserPath mengembalikan path lengkap file kredensial di dalam DataDir.
func (c Config) UserPath() string { return filepath.Join(c.DataDir, c.UserFile) }

// TaskPath mengembalikan path lengkap file task di dalam DataDir.
func (c Config) TaskPath() string { return filepath.Join(c.DataDir, c.TaskFile) }

// TaskReportPath mengembalikan path lengkap file task overview.
func (c Config) TaskReportPath() string { return filepath.Join(c.DataDir, c.TaskReportFile) }

// UserReportPath mengembalikan path lengkap file user overview.
func (c Config) UserReportPath() string { return filepath.Join(c.DataDir, c.UserReportFile) }

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
