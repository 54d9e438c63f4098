package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	JWTSecret   string
	Database    DatabaseConfig
	Mongo       MongoConfig

	// TokenExpiryDays is the validity window for issued bearer tokens.
	TokenExpiryDays int

	// StrictStatusTransitions rejects any appointment status change other
	// than scheduled -> fulfilled. Turn it off to reproduce the legacy
	// behavior where any integer status could be written.
	StrictStatusTransitions bool

	// Per-IP rate limit applied to the login endpoints.
	LoginRateLimit float64
	LoginRateBurst int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// MongoConfig holds the document-store connection details used for
// prescriptions.
type MongoConfig struct {
	URI      string
	Database string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	mongoConfig := MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DATABASE", "clinic"),
	}

	tokenExpiryDays, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY_DAYS: %w", err)
	}

	strictStatus, err := strconv.ParseBool(getEnv("STRICT_STATUS_TRANSITIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid STRICT_STATUS_TRANSITIONS: %w", err)
	}

	loginRate, err := strconv.ParseFloat(getEnv("LOGIN_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}

	loginBurst, err := strconv.Atoi(getEnv("LOGIN_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:                    getEnv("PORT", "3001"),
		Origin:                  getEnv("ORIGIN", "http://localhost:4200"),
		Environment:             getEnv("APP_ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "default_jwt_secret"),
		Database:                dbConfig,
		Mongo:                   mongoConfig,
		TokenExpiryDays:         tokenExpiryDays,
		StrictStatusTransitions: strictStatus,
		LoginRateLimit:          loginRate,
		LoginRateBurst:          loginBurst,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
