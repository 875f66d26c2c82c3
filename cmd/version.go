package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build information, injected with -ldflags "-X".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gitversion build information",
	Long: `Print the gitversion binary version.

With --output or --show-variable the build information is written like the
calculated version variables: Version, Commit, Date and GoVersion.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagOutput == "" && flagShowVariable == "" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildSummary())
			return err
		}
		return writeOutput(cmd.OutOrStdout(), buildVariables())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildCommit is Commit, or the VCS revision stamped by the Go toolchain.
func buildCommit() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

func buildSummary() string {
	summary := Version
	commit := buildCommit()
	switch {
	case commit != "" && Date != "":
		summary += " (" + shortCommit(commit) + " " + Date + ")"
	case commit != "":
		summary += " (" + shortCommit(commit) + ")"
	case Date != "":
		summary += " (" + Date + ")"
	}
	return summary
}

func buildVariables() map[string]string {
	return map[string]string{
		"Version":   Version,
		"Commit":    buildCommit(),
		"Date":      Date,
		"GoVersion": runtime.Version(),
	}
}

func shortCommit(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
