// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir         string // Base directory for all databases (always absolute)
	Port            int
	LogLevel        string
	DevMode         bool
	UpstreamAPIURL  string // Fraud platform REST API base URL
	UpstreamAPIKey  string // Optional X-API-Key for the upstream API
	RefreshSchedule string // Cron spec for the snapshot refresh job
	AllowedOrigins  []string
	Backup          *BackupConfig
}

// BackupConfig holds S3-compatible backup storage configuration
type BackupConfig struct {
	Enabled         bool
	Endpoint        string // Custom endpoint for R2/MinIO style storage
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Schedule        string // Cron spec for the scheduled backup job
	Keep            int    // Number of backups to retain
}

// SettingsGetter reads a single value from the settings database.
// Implemented by the settings repository; declared here to keep config
// free of a dependency on the settings package.
type SettingsGetter interface {
	Get(key string) (*string, error)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("AEGIS_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:         absDataDir,
		Port:            getEnvAsInt("AEGIS_PORT", 8001),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		UpstreamAPIURL:  getEnv("UPSTREAM_API_URL", "http://localhost:8000"),
		UpstreamAPIKey:  getEnv("UPSTREAM_API_KEY", ""),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 1m"),
		AllowedOrigins:  []string{getEnv("ALLOWED_ORIGIN", "*")},
		Backup:          loadBackupConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadBackupConfig() *BackupConfig {
	return &BackupConfig{
		Enabled:         getEnvAsBool("BACKUP_ENABLED", false),
		Endpoint:        getEnv("BACKUP_S3_ENDPOINT", ""),
		Region:          getEnv("BACKUP_S3_REGION", "auto"),
		Bucket:          getEnv("BACKUP_S3_BUCKET", ""),
		AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
		Schedule:        getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
		Keep:            getEnvAsInt("BACKUP_KEEP", 7),
	}
}

// UpdateFromSettings overlays configuration from the settings database.
// Settings DB values take precedence over environment variables; empty
// stored values keep the env var fallback.
func (c *Config) UpdateFromSettings(settings SettingsGetter) error {
	apiKey, err := settings.Get("upstream_api_key")
	if err != nil {
		return fmt.Errorf("failed to get upstream_api_key from settings: %w", err)
	}
	if apiKey != nil && *apiKey != "" {
		c.UpstreamAPIKey = *apiKey
	}

	apiURL, err := settings.Get("upstream_api_url")
	if err != nil {
		return fmt.Errorf("failed to get upstream_api_url from settings: %w", err)
	}
	if apiURL != nil && *apiURL != "" {
		c.UpstreamAPIURL = *apiURL
	}

	return nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Backup != nil && c.Backup.Enabled {
		if c.Backup.Bucket == "" {
			return fmt.Errorf("backup enabled but BACKUP_S3_BUCKET is empty")
		}
		if c.Backup.AccessKeyID == "" || c.Backup.SecretAccessKey == "" {
			return fmt.Errorf("backup enabled but S3 credentials are missing")
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
