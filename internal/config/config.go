package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort  string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	WorkerCount int

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	OutputDir string
}

func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		WorkerCount: getEnvInt("WORKER_COUNT", 3),

		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		OutputDir: getEnv("OUTPUT_DIR", "output"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
