package main

import (
	"context"

	"github.com/ethanbaker/ephemeris/internal/api"
	ephemeris_module "github.com/ethanbaker/ephemeris/internal/api/modules/ephemeris"
	"github.com/ethanbaker/ephemeris/internal/providers"
	ephemeris_store "github.com/ethanbaker/ephemeris/internal/stores/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"github.com/ethanbaker/ephemeris/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, closeStore, err := buildService(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			return api.Start(ctx, opts.cfg, svc)
		},
	}
}

// buildService wires the store, catalog, generator and relay from cfg. The
// returned func closes the store
func buildService(ctx context.Context, cfg *utils.Config) (*ephemeris_module.Service, func(), error) {
	logger := logging.Named("API-MAIN")

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	store, err := ephemeris_store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}

	catalog := ephemeris.NewCatalog(store, nil)
	if err := catalog.Refresh(ctx); err != nil {
		closeStore()
		return nil, nil, err
	}
	logger.Info("loaded ephemerides", zap.Int("count", len(catalog.Records())))

	var generator *ephemeris.Generator
	apiKey := cfg.Get("GENERATOR_API_KEY")
	if apiKey != "" {
		generator, err = buildGenerator(ctx, cfg, store)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
	} else {
		logger.Warn("GENERATOR_API_KEY is not set, the generator entrypoint is disabled")
	}

	var relay *sdk.Client
	if url := cfg.Get("GENERATOR_URL"); url != "" && apiKey != "" {
		relay = sdk.NewClient(url, apiKey)
	}

	svc, err := ephemeris_module.NewService(ephemeris_module.Options{
		Catalog:         catalog,
		Generator:       generator,
		GeneratorAPIKey: apiKey,
		Relay:           relay,
		Location:        loc,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	return svc, closeStore, nil
}

func buildGenerator(ctx context.Context, cfg *utils.Config, store ephemeris.StoreInterface) (*ephemeris.Generator, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	provider, err := providers.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return ephemeris.NewGenerator(&ephemeris.GeneratorOptions{
		Store:          store,
		Provider:       provider,
		PromptTemplate: utils.LoadPromptWithFallback(cfg.Get("GENERATOR_PROMPT_PATH"), ephemeris.DefaultPromptTemplate),
		Location:       loc,
		SingleFlight:   cfg.GetBool("GENERATOR_SINGLE_FLIGHT"),
		Logger:         logging.Named("GENERATOR"),
	})
}
