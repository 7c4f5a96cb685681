package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Pipeline PipelineConfig
	Upload   UploadConfig
	OCR      OCRConfig
	Metrics  MetricsConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string // "pgx" or "sqlite"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	HealthTimeout   time.Duration
}

// PipelineConfig holds orchestrator and worker configuration
type PipelineConfig struct {
	Workers             int
	QueueSize           int
	ProcessTimeout      time.Duration
	DispatchInterval    time.Duration
	ConfidenceThreshold int
}

// UploadConfig holds document storage configuration
type UploadConfig struct {
	Dir string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	TesseractLang string
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Addr string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "pgx"),
			DSN:             getEnv("DB_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			HealthTimeout:   getEnvAsDuration("DB_HEALTH_TIMEOUT", 3*time.Second),
		},
		Pipeline: PipelineConfig{
			Workers:             getEnvAsInt("PIPELINE_WORKERS", 4),
			QueueSize:           getEnvAsInt("PIPELINE_QUEUE_SIZE", 256),
			ProcessTimeout:      getEnvAsDuration("PIPELINE_PROCESS_TIMEOUT", 3*time.Minute),
			DispatchInterval:    getEnvAsDuration("PIPELINE_DISPATCH_INTERVAL", 5*time.Second),
			ConfidenceThreshold: getEnvAsInt("PIPELINE_CONFIDENCE_THRESHOLD", 70),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "./media/uploads/documents"),
		},
		OCR: OCRConfig{
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ":9090"),
		},
	}
}

// Helper functions for environment variable parsing
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidArgument)
	}
	if c.Database.Driver != "pgx" && c.Database.Driver != "sqlite" {
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be pgx or sqlite", ErrInvalidArgument)
	}
	if c.Pipeline.ConfidenceThreshold < 0 || c.Pipeline.ConfidenceThreshold > 100 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_CONFIDENCE_THRESHOLD must be in [0,100]", ErrInvalidArgument)
	}
	if c.Upload.Dir == "" {
		return NewAppError("CONFIG_ERROR", "UPLOAD_DIR is required", ErrInvalidArgument)
	}
	return nil
}
