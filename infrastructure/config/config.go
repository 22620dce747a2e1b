package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	MemoriesTable string
	BucketName    string
	EventBusName  string

	// Public base URL for derived retrieval URLs; derived from the bucket
	// when empty
	MediaBaseURL string

	// Lifetime of a pre-signed upload authorization
	UploadURLTTL time.Duration

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		MemoriesTable: getEnv("MEMORIES_TABLE", "memories"),
		BucketName:    getEnv("BUCKET_NAME", "memories-media"),
		EventBusName:  getEnv("EVENT_BUS_NAME", ""),
		MediaBaseURL:  getEnv("MEDIA_BASE_URL", ""),
		UploadURLTTL:  time.Duration(getEnvInt("UPLOAD_URL_TTL_SECONDS", 900)) * time.Second,
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "memories-backend"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.MemoriesTable == "" {
		return fmt.Errorf("MEMORIES_TABLE is required")
	}
	if c.BucketName == "" {
		return fmt.Errorf("BUCKET_NAME is required")
	}
	if c.UploadURLTTL <= 0 {
		return fmt.Errorf("UPLOAD_URL_TTL_SECONDS must be positive")
	}
	if c.Environment == "production" && !c.IsLambda() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production outside Lambda")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsLambda checks if running inside AWS Lambda, where the API Gateway JWT
// authorizer owns token validation
func (c *Config) IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
