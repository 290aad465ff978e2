package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// AI Gateway Configuration
	AIGatewayURL string
	AIGatewayKey string
	AIModel      string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// Maintenance alert digest
	AlertRecipient    string
	AlertScanInterval time.Duration
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	scanMinutes, _ := strconv.Atoi(getEnv("ALERT_SCAN_INTERVAL_MINUTES", "60"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/fleetmate?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		// AI gateway settings
		AIGatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
		AIGatewayKey: getEnv("AI_GATEWAY_KEY", ""),
		AIModel:      getEnv("AI_MODEL", "google/gemini-2.5-flash"),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@fleetmate.com"),
		FromName:     getEnv("FROM_NAME", "FleetMate"),

		AlertRecipient:    getEnv("ALERT_RECIPIENT", ""),
		AlertScanInterval: time.Duration(scanMinutes) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
