package config

import (
	"log"
	"os"
	"strconv"
)

// Config - application configuration
type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server
	ServerPort string
	AppURL     string // public base URL used in password-reset links

	// JWT
	JWTSecret string

	// SMTP (transactional email)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Redis (listing cache + distributed rate limiting)
	RedisAddr     string
	RedisPassword string

	// OneSignal push
	OneSignalAppID  string
	OneSignalAPIKey string

	// Translation API (OpenAI-compatible endpoint)
	TranslatorAPIKey string

	// Environment
	Environment string // "development", "production"
}

// LoadConfig - load configuration from environment
func LoadConfig() *Config {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "kaamsaathi"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "kaamsaathi"),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppURL:     getEnv("APP_URL", "http://localhost:3000"),

		JWTSecret: getEnv("JWT_SECRET", "kaamsaathi-dev-secret"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@kaamsaathi.in"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		OneSignalAppID:  getEnv("ONESIGNAL_APP_ID", ""),
		OneSignalAPIKey: getEnv("ONESIGNAL_REST_API_KEY", ""),

		TranslatorAPIKey: getEnv("TRANSLATOR_API_KEY", ""),

		Environment: getEnv("ENVIRONMENT", "development"),
	}

	// Log config with secrets masked
	log.Println("⚙️ Configuration loaded:")
	log.Printf("   DB: %s@%s:%s/%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
	log.Printf("   Server Port: %s", cfg.ServerPort)
	log.Printf("   App URL: %s", cfg.AppURL)
	log.Printf("   SMTP User: %s", maskString(cfg.SMTPUser))
	log.Printf("   Environment: %s", cfg.Environment)

	return cfg
}

// getEnv - environment variable with default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt - integer environment variable with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// maskString - hide a secret (email@domain.com -> em***@domain.com)
func maskString(s string) string {
	if len(s) < 4 {
		return "***"
	}
	if len(s) < 8 {
		return s[:2] + "***"
	}
	return s[:2] + "***" + s[len(s)-4:]
}

// IsDevelopment reports whether this is a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether this is a production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasSMTPConfig reports whether real email sending is configured
func (c *Config) HasSMTPConfig() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

// HasRedisConfig reports whether Redis is configured
func (c *Config) HasRedisConfig() bool {
	return c.RedisAddr != ""
}
