package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	AWSRegion string

	S3Bucket string

	NATSURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	Email EmailConfig
	Links LinkConfig
}

type EmailConfig struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
}

type LinkConfig struct {
	AppScheme string
	WebDomain string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	accessExpiry, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRY", "24h"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		S3Bucket: getEnv("S3_BUCKET_NAME", ""),

		NATSURL: getEnv("NATS_URL", "nats://127.0.0.1:4222"),

		JWTSecret:       getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry: accessExpiry,

		Email: EmailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromAddress:    getEnv("EMAIL_FROM_ADDRESS", "no-reply@playerpath.app"),
			FromName:       getEnv("EMAIL_FROM_NAME", "PlayerPath"),
		},
		Links: LinkConfig{
			AppScheme: getEnv("APP_LINK_SCHEME", "playerpath"),
			WebDomain: getEnv("WEB_LINK_DOMAIN", "playerpath.app"),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
