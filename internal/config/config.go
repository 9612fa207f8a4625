package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultPoolSize is the number of storage connections opened when
// GYM_POOL_SIZE is unset.
const DefaultPoolSize = 5

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	DatabasePath string
	PoolSize     int
	BackupDir    string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabasePath: getEnv("GYM_DB_PATH", "data/gym.db"),
		PoolSize:     getEnvInt("GYM_POOL_SIZE", DefaultPoolSize),
		BackupDir:    getEnv("GYM_BACKUP_DIR", "backups"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
