package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	// Three independent token secrets: session, account activation, password
	// reset. A token signed for one purpose is never accepted for another.
	JWTSecret            string
	JWTAccountActivation string
	JWTResetPassword     string

	SendgridAPIKey string
	EmailFrom      string
	GoogleClientID string

	// ClientURL is the public frontend origin embedded in emailed links and
	// generated profile URLs.
	ClientURL   string
	AppName     string
	Environment string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8000"),
		MySQLDSN:             getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		JWTSecret:            getEnv("JWT_SECRET", "change-me"),
		JWTAccountActivation: getEnv("JWT_ACCOUNT_ACTIVATION", "change-me-activation"),
		JWTResetPassword:     getEnv("JWT_RESET_PASSWORD", "change-me-reset"),
		SendgridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:            getEnv("EMAIL_FROM", "noreply@kblog.com"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		ClientURL:            getEnv("CLIENT_URL", "http://localhost:3000"),
		AppName:              getEnv("APP_NAME", "KBlog"),
		Environment:          getEnv("ENVIRONMENT", "development"),
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
