package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// MarkitdownBin is an explicit path to the markitdown binary.
	// Empty means search PATH and common install locations.
	MarkitdownBin string

	// TmpDir is where uploaded files are staged before conversion.
	TmpDir string

	// MaxUploadBytes caps the request body size; larger bodies get a 413.
	MaxUploadBytes int64

	// Debug flags
	Debug bool // Enables verbose logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "5000"),
		Environment:    env,
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		MarkitdownBin:  getEnv("MARKITDOWN_BIN", ""),
		TmpDir:         getEnv("TMP_DIR", os.TempDir()),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", MaxUploadBytes),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
