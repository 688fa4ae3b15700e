package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethanbaker/ephemeris/internal/providers/gemini"
	"github.com/ethanbaker/ephemeris/internal/providers/openai"
	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/utils"
)

// Supported values of GENERATION_PROVIDER
const (
	Gemini = "gemini"
	OpenAI = "openai"
)

// New builds the generation provider selected by GENERATION_PROVIDER (gemini when unset)
func New(ctx context.Context, cfg *utils.Config) (ephemeris.Provider, error) {
	name := strings.ToLower(cfg.GetWithDefault("GENERATION_PROVIDER", Gemini))

	switch name {
	case Gemini:
		key, err := cfg.Require("GEMINI_API_KEY")
		if err != nil {
			return nil, err
		}
		return gemini.New(ctx, gemini.Options{
			APIKey:  key,
			Model:   cfg.Get("GEMINI_MODEL"),
			BaseURL: cfg.Get("GEMINI_BASE_URL"),
		})

	case OpenAI:
		key, err := cfg.Require("OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		return openai.New(openai.Options{
			APIKey:  key,
			Model:   cfg.Get("OPENAI_MODEL"),
			BaseURL: cfg.Get("OPENAI_BASE_URL"),
		})

	default:
		return nil, &utils.ConfigError{Key: "GENERATION_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", name)}
	}
}
