// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mtlahti/choreboard/internal/backup"
)

// Storage backends for the day-plan store.
const (
	StorageMemory = "memory"
	StorageFiles  = "files"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port     string
	LogLevel string

	// Storage selects where snapshots are written: memory, files, or sqlite.
	Storage string
	DataDir string
	DBPath  string

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	ReminderHour    int

	Backup backup.Config
}

// Load reads CHOREBOARD_* environment variables. A missing .env file is not
// an error; real environments set variables directly.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:            getEnv("CHOREBOARD_PORT", "8080"),
		LogLevel:        getEnv("CHOREBOARD_LOG_LEVEL", "info"),
		Storage:         getEnv("CHOREBOARD_STORAGE", StorageFiles),
		DataDir:         getEnv("CHOREBOARD_DATA_DIR", "data"),
		DBPath:          getEnv("CHOREBOARD_DB_PATH", "choreboard.db"),
		VAPIDPublicKey:  os.Getenv("CHOREBOARD_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("CHOREBOARD_VAPID_PRIVATE_KEY"),
	}

	switch cfg.Storage {
	case StorageMemory, StorageFiles, StorageSQLite:
	default:
		return nil, fmt.Errorf("invalid CHOREBOARD_STORAGE %q: want memory, files, or sqlite", cfg.Storage)
	}

	hour, err := getEnvInt("CHOREBOARD_REMINDER_HOUR", 7)
	if err != nil {
		return nil, err
	}
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("invalid CHOREBOARD_REMINDER_HOUR %d: want 0-23", hour)
	}
	cfg.ReminderHour = hour

	backupHour, err := getEnvInt("CHOREBOARD_BACKUP_HOUR", 3)
	if err != nil {
		return nil, err
	}
	cfg.Backup = backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("CHOREBOARD_S3_ENDPOINT"),
			Bucket:    os.Getenv("CHOREBOARD_S3_BUCKET"),
			Region:    getEnv("CHOREBOARD_S3_REGION", "us-east-1"),
			AccessKey: os.Getenv("CHOREBOARD_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("CHOREBOARD_S3_SECRET_KEY"),
		},
		Hour:   backupHour,
		Prefix: getEnv("CHOREBOARD_S3_PREFIX", "choreboard"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
