package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port         string
	AllowOrigins string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	AMQPUrl      string
	AMQPExchange string
	AMQPQueue    string

	DefaultBanks  []string
	ReqTimeoutSec int
	LogLevel      string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func csv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "familybudget"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		AMQPUrl:      getenv("AMQP_URL", ""),
		AMQPExchange: getenv("AMQP_EXCHANGE", "budget.alerts"),
		AMQPQueue:    getenv("AMQP_QUEUE", "budget.alerts"),

		DefaultBanks:  csv("DEFAULT_BANKS", []string{"BBVA", "Banregio"}),
		ReqTimeoutSec: atoi("REQUEST_TIMEOUT_SECONDS", 30),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}
