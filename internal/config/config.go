package config

import (
	"os"
)

type Config struct {
	Environment        string
	DBPath             string
	DefaultOCRLanguage string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment:        env,
		DBPath:             getEnv("SCANDOC_DB_PATH", "scandoc.db"),
		DefaultOCRLanguage: getEnv("SCANDOC_OCR_LANGUAGE", "en"),
		// Debug defaults to true outside production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
