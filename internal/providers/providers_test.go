package providers

import (
	"context"
	"testing"

	"github.com/ethanbaker/ephemeris/internal/providers/gemini"
	"github.com/ethanbaker/ephemeris/internal/providers/openai"
	"github.com/ethanbaker/ephemeris/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("gemini by default", func(t *testing.T) {
		p, err := New(ctx, utils.NewConfig(map[string]string{"GEMINI_API_KEY": "key"}))
		require.NoError(t, err)
		assert.IsType(t, &gemini.Provider{}, p)
	})

	t.Run("openai", func(t *testing.T) {
		p, err := New(ctx, utils.NewConfig(map[string]string{"GENERATION_PROVIDER": "OpenAI", "OPENAI_API_KEY": "sk"}))
		require.NoError(t, err)
		assert.IsType(t, &openai.Provider{}, p)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := New(ctx, utils.NewConfig(nil))
		assert.EqualError(t, err, "missing required configuration: GEMINI_API_KEY")

		_, err = New(ctx, utils.NewConfig(map[string]string{"GENERATION_PROVIDER": "openai"}))
		assert.EqualError(t, err, "missing required configuration: OPENAI_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(ctx, utils.NewConfig(map[string]string{"GENERATION_PROVIDER": "llama"}))
		var cfgErr *utils.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "GENERATION_PROVIDER", cfgErr.Key)
	})
}
