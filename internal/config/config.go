package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Public base URL used to build edit links
	BaseURL string `json:"base_url"`

	// MongoDB configuration
	MongoURI          string `json:"mongo_uri"`
	MongoDatabase     string `json:"mongo_database"`
	ProfileCollection string `json:"mongo_profile_collection"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	CacheTTL      time.Duration `json:"cache_ttl"`

	// Object storage configuration
	MinioEndpoint    string `json:"minio_endpoint"`
	MinioAccessKey   string `json:"minio_access_key"`
	MinioSecretKey   string `json:"minio_secret_key"`
	MinioUseSSL      bool   `json:"minio_use_ssl"`
	PhotoBucket      string `json:"photo_bucket"`
	StoragePublicURL string `json:"storage_public_url"`

	// Registration policy
	DuplicateCheckEnabled    bool   `json:"duplicate_check_enabled"`
	ContactValidationEnabled bool   `json:"contact_validation_enabled"`
	DefaultPhoneRegion       string `json:"default_phone_region"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnvOrDefault("CACHE_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		return fmt.Errorf("MINIO_ENDPOINT environment variable is required")
	}

	scheme := "http"
	minioUseSSL := getEnvOrDefault("MINIO_USE_SSL", "false") == "true"
	if minioUseSSL {
		scheme = "https"
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		BaseURL:     getEnvOrDefault("BASE_URL", fmt.Sprintf("http://localhost:%d", port)),

		// MongoDB configuration
		MongoURI:          getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnvOrDefault("MONGODB_DATABASE", "directory"),
		ProfileCollection: getEnvOrDefault("MONGODB_PROFILE_COLLECTION", "profiles"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		CacheTTL:      cacheTTL,

		// Object storage configuration
		MinioEndpoint:    minioEndpoint,
		MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", ""),
		MinioUseSSL:      minioUseSSL,
		PhotoBucket:      getEnvOrDefault("PHOTO_BUCKET", "user-photos"),
		StoragePublicURL: getEnvOrDefault("STORAGE_PUBLIC_URL", fmt.Sprintf("%s://%s", scheme, minioEndpoint)),

		// Registration policy
		DuplicateCheckEnabled:    getEnvOrDefault("DUPLICATE_CHECK_ENABLED", "true") == "true",
		ContactValidationEnabled: getEnvOrDefault("CONTACT_VALIDATION_ENABLED", "false") == "true",
		DefaultPhoneRegion:       getEnvOrDefault("DEFAULT_PHONE_REGION", "IN"),

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
