package main

import (
	"fmt"

	"github.com/ethanbaker/ephemeris/internal/scheduler"
	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"github.com/ethanbaker/ephemeris/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Trigger generation on the configured schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newScheduler(opts.cfg)
			if err != nil {
				return err
			}

			s.Start()
			logging.Named("SCHEDULER").Info("waiting for the next run", zap.Time("next", s.Next()))

			<-cmd.Context().Done()
			s.Stop()
			return nil
		},
	}
}

func newTriggerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Trigger generation once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newScheduler(opts.cfg)
			if err != nil {
				return err
			}

			res, err := s.RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

// newScheduler builds a scheduler that calls the generator entrypoint named by
// GENERATOR_URL
func newScheduler(cfg *utils.Config) (*scheduler.Scheduler, error) {
	if err := cfg.RequireAll("GENERATOR_URL", "GENERATOR_API_KEY"); err != nil {
		return nil, err
	}

	schedule, err := scheduler.LoadOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := sdk.NewClient(cfg.Get("GENERATOR_URL"), cfg.Get("GENERATOR_API_KEY"))
	return scheduler.New(client, schedule)
}
