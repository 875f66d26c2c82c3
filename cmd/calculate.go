package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/output"
	"github.com/MyCarrier-DevOps/go-gitversion/pkg/gitsemver"
)

var (
	flagBranches    []string
	flagConcurrency int
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the version of a local repository",
	Long: `Calculate the semantic version of HEAD, or of --branch/--commit, in a local
git repository.

With --branches, several branches are calculated concurrently and the
result is a JSON object of variables keyed by branch name.`,
	Args: cobra.NoArgs,
	RunE: calculateRunE,
}

func init() {
	calculateCmd.Flags().StringSliceVar(&flagBranches, "branches", nil, "calculate several branches at once (comma separated)")
	calculateCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "parallel calculations for --branches (default: GOMAXPROCS)")
	rootCmd.AddCommand(calculateCmd)
}

func localOptions() gitsemver.LocalOptions {
	return gitsemver.LocalOptions{
		Path:        flagPath,
		Branch:      flagBranch,
		Commit:      flagCommit,
		ConfigPath:  flagConfig,
		Explain:     flagExplain,
		Concurrency: flagConcurrency,
		Logger:      logger,
	}
}

func calculateRunE(cmd *cobra.Command, _ []string) error {
	opts := localOptions()
	out := cmd.OutOrStdout()

	if flagShowConfig {
		cfg, err := gitsemver.LocalConfig(opts)
		if err != nil {
			return err
		}
		return showConfig(out, cfg)
	}

	if len(flagBranches) > 0 {
		return calculateBranches(cmd.Context(), out, opts)
	}

	logger.Info("calculating version")
	result, err := gitsemver.Calculate(opts)
	if err != nil {
		return err
	}
	return writeResult(out, cmd.ErrOrStderr(), result)
}

func calculateBranches(ctx context.Context, w io.Writer, opts gitsemver.LocalOptions) error {
	results, err := gitsemver.CalculateBranches(ctx, opts, flagBranches)
	if err != nil {
		return err
	}

	byBranch := make(map[string]map[string]string, len(results))
	for i, r := range results {
		byBranch[flagBranches[i]] = r.Variables
	}
	data, err := json.MarshalIndent(byBranch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling branch versions: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeResult writes the explanation to errw when requested, then the
// variables to w.
func writeResult(w, errw io.Writer, result *gitsemver.Result) error {
	if flagExplain && result.ExplainResult != nil {
		if _, err := io.WriteString(errw, result.ExplainResult.FormattedOutput); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}
	return writeOutput(w, result.Variables)
}

// showConfig prints the effective configuration as YAML.
func showConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return enc.Close()
}

// writeOutput writes the version variables in the requested format.
func writeOutput(w io.Writer, vars map[string]string) error {
	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}

	switch flagOutput {
	case "json":
		return output.WriteJSON(w, vars)
	case "dotenv":
		return output.WriteDotEnv(w, vars)
	case "":
		return output.WriteAll(w, vars)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
