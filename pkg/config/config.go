package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Storage  StorageConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
	ReplyTo      string
	// OperatorEmail receives contact notifications and the daily digest.
	OperatorEmail string
	// BaseURL is the public site origin, used to build unsubscribe links.
	BaseURL string
}

type StorageConfig struct {
	R2AccountID string
	R2AccessKey string
	R2SecretKey string
	Bucket      string
	// PublicURL is the CDN origin the bucket is served from.
	PublicURL string
}

type AdminConfig struct {
	Email    string
	Password string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		},
		Email: EmailConfig{
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			From:          getEnv("EMAIL_FROM", "Mon Restaurant <noreply@monrestaurant.fr>"),
			ReplyTo:       getEnv("EMAIL_REPLY_TO", "contact@monrestaurant.fr"),
			OperatorEmail: getEnv("OPERATOR_EMAIL", "contact@monrestaurant.fr"),
			BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		},
		Storage: StorageConfig{
			R2AccountID: getEnv("R2_ACCOUNT_ID", ""),
			R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
			R2SecretKey: getEnv("R2_SECRET_KEY", ""),
			Bucket:      getEnv("R2_BUCKET", "restaurant-uploads"),
			PublicURL:   getEnv("R2_PUBLIC_URL", ""),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
