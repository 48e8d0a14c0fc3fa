package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	HOST        string
	DatabaseURL string
	AppEnv      string

	// JWT Settings
	JWTSecret     string
	JWTExpiration string

	// Campus restriction
	EmailDomain string

	// Email delivery (Resend-compatible HTTP API)
	ResendAPIKey string
	MailFrom     string

	// Image hosting
	ImageHostURL string
	ImageHostKey string

	// Keep-alive self ping (free hosting tiers sleep otherwise)
	SelfURL string

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func LoadConfig() *Config {
	// .env is optional in production; real env vars win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	config := &Config{
		AppPort:     getEnv("PORT", "5000"),
		HOST:        os.Getenv("HOST"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AppEnv:      getEnv("APP_ENV", "production"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: getEnv("JWT_EXPIRES_IN", "168h"),

		EmailDomain: getEnv("EMAIL_DOMAIN", "@rtu.ac.in"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnv("MAIL_FROM", "CampusMart <onboarding@resend.dev>"),

		ImageHostURL: os.Getenv("IMAGE_HOST_URL"),
		ImageHostKey: os.Getenv("IMAGE_HOST_API_KEY"),

		SelfURL: os.Getenv("SELF_URL"),

		CORSAllowOrigins: splitEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	return config
}

// IsDevelopment reports whether the campus email restriction should be
// relaxed (local testing with throwaway addresses).
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
