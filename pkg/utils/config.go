package utils

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // Embed timezone database
)

// DefaultTimezone is the wall-clock zone used to decide what "today" means
const DefaultTimezone = "Europe/Madrid"

// ConfigError reports a required configuration item that is missing or unusable
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required configuration: %s", e.Key)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// Config provides a thread-safe configuration management system
// that handles environment variables with defaults and type conversion
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config instance with the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config instance by loading environment variables
// from the specified .env files
func NewConfigFromEnv(files ...string) *Config {
	envMap := LoadEnv(files...)
	return NewConfig(envMap)
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a configuration value by key with a fallback default
func (c *Config) GetWithDefault(key, defaultValue string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if value, exists := c.values[key]; exists && value != "" {
		return value
	}
	return defaultValue
}

// GetBool retrieves a configuration value as a boolean
// Returns false if key doesn't exist or cannot be parsed as boolean
func (c *Config) GetBool(key string) bool {
	value := c.Get(key)
	if value == "" {
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		switch strings.ToLower(value) {
		case "yes", "on", "enabled":
			return true
		default:
			return false
		}
	}
	return parsed
}

// Require returns the value of key, or a *ConfigError if it is unset or empty
func (c *Config) Require(key string) (string, error) {
	value := strings.TrimSpace(c.Get(key))
	if value == "" {
		return "", &ConfigError{Key: key}
	}
	return value, nil
}

// RequireAll checks every key and reports the first one that is missing
func (c *Config) RequireAll(keys ...string) error {
	for _, key := range keys {
		if _, err := c.Require(key); err != nil {
			return err
		}
	}
	return nil
}

// Location loads the timezone named by APP_TIMEZONE (DefaultTimezone when unset)
func (c *Config) Location() (*time.Location, error) {
	name := c.GetWithDefault("APP_TIMEZONE", DefaultTimezone)

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ConfigError{Key: "APP_TIMEZONE", Reason: err.Error()}
	}
	return loc, nil
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}
