package utils

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.Empty(t, config.Get("key1"))
		config.Set("key1", "value1")
		assert.Equal(t, "value1", config.Get("key1"))
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test_env_*.env")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString("EPHEMERIS_TEST_KEY=from_file\n")
	require.NoError(t, err)
	tmpFile.Close()
	defer os.Unsetenv("EPHEMERIS_TEST_KEY")

	config := NewConfigFromEnv(tmpFile.Name(), "does-not-exist.env")

	require.NotNil(t, config)
	assert.Equal(t, "from_file", config.Get("EPHEMERIS_TEST_KEY"))
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	assert.Equal(t, "value", config.GetWithDefault("existing", "default"))
	assert.Equal(t, "default", config.GetWithDefault("missing", "default"))
	assert.Equal(t, "default", config.GetWithDefault("empty", "default"))
}

func TestConfigGetBool(t *testing.T) {
	config := NewConfig(map[string]string{
		"true_bool":    "true",
		"false_bool":   "false",
		"true_1":       "1",
		"true_yes":     "yes",
		"true_enabled": "Enabled",
		"false_no":     "no",
		"invalid":      "invalid_bool",
		"empty":        "",
	})

	tests := []struct {
		key      string
		expected bool
	}{
		{"true_bool", true},
		{"false_bool", false},
		{"true_1", true},
		{"true_yes", true},
		{"true_enabled", true},
		{"false_no", false},
		{"invalid", false},
		{"empty", false},
		{"missing", false},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			assert.Equal(t, test.expected, config.GetBool(test.key), "GetBool(%s)", test.key)
		})
	}
}

func TestConfigRequire(t *testing.T) {
	config := NewConfig(map[string]string{
		"GEMINI_API_KEY": "secret",
		"BLANK":          "   ",
	})

	value, err := config.Require("GEMINI_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	_, err = config.Require("BLANK")
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "BLANK", cfgErr.Key)

	err = config.RequireAll("GEMINI_API_KEY", "MYSQL_HOST")
	require.Error(t, err)
	assert.Equal(t, "missing required configuration: MYSQL_HOST", err.Error())
}

func TestConfigLocation(t *testing.T) {
	t.Run("default timezone", func(t *testing.T) {
		loc, err := NewConfig(nil).Location()
		require.NoError(t, err)
		assert.Equal(t, DefaultTimezone, loc.String())
	})

	t.Run("custom timezone", func(t *testing.T) {
		loc, err := NewConfig(map[string]string{"APP_TIMEZONE": "UTC"}).Location()
		require.NoError(t, err)
		assert.Equal(t, "UTC", loc.String())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := NewConfig(map[string]string{"APP_TIMEZONE": "Mars/Olympus"}).Location()
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "APP_TIMEZONE", cfgErr.Key)
	})
}

func TestConfigThreadSafety(t *testing.T) {
	config := NewConfig(map[string]string{"counter": "0"})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range 50 {
				config.Set("key", "value")
				config.Get("key")
				config.GetBool("counter")
				config.GetWithDefault("counter", strconv.Itoa(id))
			}
		}(i)
	}

	wg.Wait()
}
