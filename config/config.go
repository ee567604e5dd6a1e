package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally supplied setting. It is built once in main
// and handed to constructors; nothing else reads the environment.
type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string

	JWTSecret string
	JWTTTL    time.Duration

	StripeSecretKey      string
	StripePublishableKey string
	FrontendURL          string

	SendgridAPIKey string
	EmailSender    string

	Env string // "development" or "production"
}

// Load reads .env (if present) and assembles the Config.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}

	return Config{
		Port:         getEnv("PORT", "5000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGODB_DATABASE", "stylehub"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    30 * 24 * time.Hour,

		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "orders@stylehub.example"),

		Env: getEnv("APP_ENV", "development"),
	}
}

// IsProduction reports whether error responses should omit internal detail.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
