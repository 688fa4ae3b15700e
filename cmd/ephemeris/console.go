package main

import (
	"github.com/ethanbaker/ephemeris/internal/console"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"github.com/spf13/cobra"
)

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = "http://localhost:" + opts.cfg.GetWithDefault("API_PORT", "8080")
			}

			loc, err := opts.cfg.Location()
			if err != nil {
				return err
			}

			c, err := console.New(console.Options{
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
				Backend:  sdk.NewClient(apiURL, ""),
				Location: loc,
			})
			if err != nil {
				return err
			}

			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "base URL of the ephemeris API (default http://localhost:$API_PORT)")
	return cmd
}
