package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all ambient application configuration.
type Config struct {
	Pipeline PipelineConfig
	OCR      OCRConfig
	History  HistoryConfig
}

// PipelineConfig holds per-document pipeline settings.
type PipelineConfig struct {
	// DocTimeout bounds a single document's processing so one stuck OCR
	// call cannot stall the whole batch.
	DocTimeout time.Duration
}

// OCRConfig holds OCR-related configuration.
type OCRConfig struct {
	Pdftoppm       string // binary name or absolute path; if empty -> "pdftoppm"
	DPI            int    // rasterization DPI for scanned PDFs, default 300
	MaxPages       int    // 0 = no limit
	TessdataDir    string
	DefaultProfile string // tesseract config string, e.g. "--oem 3 --psm 6 -l deu+eng"
}

// HistoryConfig holds the processing-history store configuration.
type HistoryConfig struct {
	Path string // sqlite file; ":memory:" for ephemeral runs
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			DocTimeout: getEnvAsDuration("PIPELINE_DOC_TIMEOUT", 2*time.Minute),
		},
		OCR: OCRConfig{
			Pdftoppm:       getEnv("PDFTOPPM_BIN", "pdftoppm"),
			DPI:            getEnvAsInt("OCR_DPI", 300),
			MaxPages:       getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir:    getEnv("TESSDATA_PREFIX", ""),
			DefaultProfile: getEnv("OCR_DEFAULT_PROFILE", "--oem 3 --psm 6 -l deu+eng"),
		},
		History: HistoryConfig{
			Path: getEnv("HISTORY_DB_PATH", "docsort.db"),
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
