package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flags shared across commands.
var (
	flagPath         string
	flagBranch       string
	flagCommit       string
	flagConfig       string
	flagOutput       string
	flagShowVariable string
	flagShowConfig   bool
	flagExplain      bool
	flagVerbosity    string
)

// logger is built from --verbosity before any command runs.
var logger = zap.NewNop()

// rootCmd is the top-level command for gitversion.
var rootCmd = &cobra.Command{
	Use:   "gitversion",
	Short: "Semantic versioning from git history",
	Long: `gitversion calculates the semantic version of a commit from git history,
tags and branch conventions. Running it without a subcommand is the same as
running "gitversion calculate".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := newLogger(flagVerbosity)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE: calculateRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVarP(&flagBranch, "branch", "b", "", "target branch (default: current HEAD)")
	rootCmd.PersistentFlags().StringVarP(&flagCommit, "commit", "c", "", "target commit SHA (default: branch tip)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, dotenv, or empty for key=value lines")
	rootCmd.PersistentFlags().StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. SemVer, FullSemVer)")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "show how the version was calculated")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "normal", "log verbosity: quiet, normal, verbose, diagnostic")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
