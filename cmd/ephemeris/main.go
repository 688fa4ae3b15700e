package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/utils"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	envFile  string
	logLevel string

	cfg *utils.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ephemeris",
		Short:         "Daily technology ephemeris service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = utils.NewConfigFromEnv(opts.envFile)

			level := opts.logLevel
			if level == "" {
				level = opts.cfg.Get("LOG_LEVEL")
			}
			if _, err := logging.Setup(level); err != nil {
				return err
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", utils.EnvFile(), ".env file to load")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newScheduleCmd(opts))
	rootCmd.AddCommand(newTriggerCmd(opts))
	rootCmd.AddCommand(newConsoleCmd(opts))

	return rootCmd
}
