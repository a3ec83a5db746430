package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Checkout CheckoutConfig
	Cleanup  CleanupConfig
	Payment  PaymentConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds the settings needed to verify tokens issued by the
// external identity provider
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// CheckoutConfig holds the cart/checkout timing rules
type CheckoutConfig struct {
	ReservationTTL  time.Duration // How long a cart reservation holds stock
	PaymentDeadline time.Duration // How long a pending order may await payment
}

// CleanupConfig holds the shared secret for the sweeper endpoint
type CleanupConfig struct {
	Secret string
}

type PaymentConfig struct {
	Provider    string
	SecretKey   string
	CallbackURL string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Database: parseDatabaseConfig(),
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", "dev-secret-change-in-production"),
			Issuer:    getEnv("AUTH_ISSUER", "https://auth.example.com"),
		},
		Checkout: CheckoutConfig{
			ReservationTTL:  getEnvAsDuration("RESERVATION_TTL", 15*time.Minute),
			PaymentDeadline: getEnvAsDuration("PAYMENT_DEADLINE", 20*time.Minute),
		},
		Cleanup: CleanupConfig{
			Secret: getEnv("CLEANUP_SECRET", ""),
		},
		Payment: PaymentConfig{
			Provider:    getEnv("PAYMENT_PROVIDER", "mock"),
			SecretKey:   getEnv("PAYMENT_SECRET_KEY", ""),
			CallbackURL: getEnv("PAYMENT_CALLBACK_URL", "http://localhost:8080/api/payment/callback"),
		},
	}

	return config, nil
}

func parseDatabaseConfig() DatabaseConfig {
	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		return parseDatabaseURL(databaseURL)
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "bakery_commerce"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	// Parse the URL
	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432 // Default PostgreSQL port
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	// Remove leading slash from path to get database name
	config.DBName = strings.TrimPrefix(u.Path, "/")

	// Parse query parameters for SSL mode
	query := u.Query()
	config.SSLMode = query.Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
