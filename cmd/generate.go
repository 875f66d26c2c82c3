package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/generate"
	"github.com/MyCarrier-DevOps/go-gitversion/pkg/gitsemver"
)

var (
	flagLanguage        string
	flagIntermediateDir string
	flagProject         string
	flagNamespace       string
	flagMinVersion      string
	flagCheck           []string
	flagCleanStale      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a version information source file",
	Long: `Calculate the version of the local repository and write it as a source file
that a build can compile in.

Languages: go, cs, fs, vb, json.

Without --intermediate-dir the file goes to a per-user temp directory with a
unique name, and files there older than a day are removed when --clean-stale
is set.

Examples:
  gitversion generate --language go --intermediate-dir internal/version
  gitversion generate --language cs --project MyApp --check Properties/AssemblyInfo.cs
  gitversion generate --language go --min-version ">= 1.0.0"`,
	Args: cobra.NoArgs,
	RunE: generateRunE,
}

func init() {
	generateCmd.Flags().StringVarP(&flagLanguage, "language", "l", "go", "output language: go, cs, fs, vb, json")
	generateCmd.Flags().StringVar(&flagIntermediateDir, "intermediate-dir", "", "directory for the generated file (default: temp directory)")
	generateCmd.Flags().StringVar(&flagProject, "project", "", "project name used in temp file names")
	generateCmd.Flags().StringVar(&flagNamespace, "namespace", "", "Go package or .NET namespace for the generated file")
	generateCmd.Flags().StringVar(&flagMinVersion, "min-version", "", "fail unless SemVer satisfies this constraint (e.g. \">= 1.0.0\")")
	generateCmd.Flags().StringSliceVar(&flagCheck, "check", nil, "source files to check for existing version declarations")
	generateCmd.Flags().BoolVar(&flagCleanStale, "clean-stale", true, "remove stale files from the temp directory")
	rootCmd.AddCommand(generateCmd)
}

func generateRunE(cmd *cobra.Command, _ []string) error {
	lang, err := generate.ParseLanguage(flagLanguage)
	if err != nil {
		return err
	}

	w := generate.NewWriter(osfs.New("/"),
		generate.WithTempDir(filepath.Join(os.TempDir(), generate.DefaultTempDir)),
		generate.WithLogger(logger))

	if len(flagCheck) > 0 {
		files, err := absPaths(flagCheck)
		if err != nil {
			return err
		}
		conflicts, err := w.CheckConflicts(files)
		if err != nil {
			return fmt.Errorf("checking for conflicts: %w", err)
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("version information already declared in %s", strings.Join(conflicts, ", "))
		}
	}

	result, err := gitsemver.Calculate(localOptions())
	if err != nil {
		return err
	}

	req := generate.Request{
		Language:   lang,
		Project:    flagProject,
		Namespace:  flagNamespace,
		Variables:  result.Variables,
		MinVersion: flagMinVersion,
	}
	if flagIntermediateDir != "" {
		dir, err := filepath.Abs(flagIntermediateDir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", flagIntermediateDir, err)
		}
		req.IntermediateDir = dir
	}

	out, err := w.Generate(req)
	if err != nil {
		return fmt.Errorf("generating version file: %w", err)
	}

	if flagCleanStale && req.IntermediateDir == "" {
		n, err := w.CleanStale(time.Now())
		if err != nil {
			logger.Warn("cleaning stale version files", zap.Error(err))
		} else if n > 0 {
			logger.Info("removed stale version files", zap.Int("count", n))
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func absPaths(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		out[i] = abs
	}
	return out, nil
}
