package config

import (
	"os"
	"strconv"

	"github.com/quillhub/quill/backend/internal/pagination"
)

type Config struct {
	Port        string
	Env         string
	PostgresURL string
	MongoURI    string
	RedisAddr   string
	JWTSecret   string
	PageSize    int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		PostgresURL: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:    getEnv("MONGO_URI", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),
		PageSize:    getEnvInt("PAGE_SIZE", pagination.DefaultPageSize),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
