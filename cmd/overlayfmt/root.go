package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/overlayfmt/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "overlayfmt",
		Short: "Format chess broadcast data for stream overlays",
		Long: `overlayfmt formats lichess broadcast data the way the stream overlay shows it:
clock strings, chapter names and game IDs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logger.ValidLevel(logLevel) {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			log := logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithLevel(logger.ParseLevel(logLevel)),
				logger.WithColors(false),
				logger.WithCaller(false),
			).WithPrefix("cli")
			cmd.SetContext(logger.NewContext(cmd.Context(), log))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")

	cmd.AddCommand(newClockCmd())
	cmd.AddCommand(newGameIDCmd())
	cmd.AddCommand(newChapterNameCmd())
	cmd.AddCommand(newChapterCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "overlayfmt %s (%s, %s)\n", version, commit[:min(7, len(commit))], date)
		},
	}
}
