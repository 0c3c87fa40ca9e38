package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	MinIO   MinIOConfig
	Access  AccessConfig
	Catalog CatalogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type MinIOConfig struct {
	Endpoint     string // localhost:9000
	AccessKey    string
	SecretKey    string
	FilesBucket  string // template source files
	MediaBucket  string // carousel images
	UseSSL       bool
	UploadExpiry time.Duration // lifetime of presigned PUT urls
}

// Enabled reports whether object storage is configured at all. When false
// the upload request endpoints validate and short-circuit without touching
// storage or the audit log.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != "" && m.AccessKey != ""
}

// AccessConfig carries the owner identity for the admin allow-list.
// Injected here so the admission policy has no baked-in literal.
type AccessConfig struct {
	OwnerEmail   string
	OwnerUserID  string
	AdminEnabled bool
}

type CatalogConfig struct {
	CacheTTL time.Duration // staleness window for list/detail responses
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "FrameCanvas API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		MinIO: MinIOConfig{
			Endpoint:     getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:    getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:    getEnv("MINIO_SECRET_KEY", "minioadmin"),
			FilesBucket:  getEnv("MINIO_FILES_BUCKET", "template-files"),
			MediaBucket:  getEnv("MINIO_MEDIA_BUCKET", "template-media"),
			UseSSL:       getEnv("MINIO_USE_SSL", "false") == "true",
			UploadExpiry: getEnvDuration("MINIO_UPLOAD_EXPIRY", 15*time.Minute),
		},
		Access: AccessConfig{
			OwnerEmail:   getEnv("OWNER_EMAIL", ""),
			OwnerUserID:  getEnv("OWNER_USER_ID", ""),
			AdminEnabled: getEnv("ADMIN_ENABLED", "true") == "true",
		},
		Catalog: CatalogConfig{
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for values that cannot ship to production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Access.OwnerEmail == "" {
			return fmt.Errorf("OWNER_EMAIL must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
