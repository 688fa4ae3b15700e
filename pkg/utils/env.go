package utils

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv loads environment variables from multiple .env files
// Returns a map of environment variables. Variables already present in the
// process environment are never overridden by a file
func LoadEnv(files ...string) map[string]string {
	config := make(map[string]string)

	// Load each file in order
	for _, file := range files {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				zap.L().Named("UTILS").Warn("could not load env file", zap.String("file", file), zap.Error(err))
			}
		}
	}

	// Read all environment variables into map
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if ok && key != "" {
			config[key] = value
		}
	}

	return config
}

// EnvFile returns the .env path to load, honouring ENV_FILE
func EnvFile() string {
	return GetEnvWithDefault("ENV_FILE", ".env")
}

// GetEnvWithDefault returns an environment variable value or a default if not set
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
