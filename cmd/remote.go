package cmd

import (
	"github.com/spf13/cobra"

	ghprovider "github.com/MyCarrier-DevOps/go-gitversion/internal/github"
	"github.com/MyCarrier-DevOps/go-gitversion/pkg/gitsemver"
)

var (
	flagToken            string
	flagAppID            int64
	flagAppKey           string
	flagAppKeyPath       string
	flagGitHubURL        string
	flagRef              string
	flagMaxCommits       int
	flagRemoteConfigPath string
)

var remoteCmd = &cobra.Command{
	Use:   "remote owner/repo",
	Short: "Calculate version from a GitHub repository via API",
	Long: `Calculate the next semantic version by reading git history from the
GitHub API. No local clone is required.

Authentication (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key (PEM content) or GH_APP_ID + GH_APP_PRIVATE_KEY env vars
  3. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY_PATH env vars

Examples:
  GITHUB_TOKEN=ghp_xxx gitversion remote myorg/myrepo
  gitversion remote myorg/myrepo --token ghp_xxx --ref main
  gitversion remote myorg/myrepo --github-app-id 12345 --github-app-key "$APP_PRIVATE_KEY"
  gitversion remote myorg/myrepo --github-app-id 12345 --github-app-key-path /path/to/key.pem`,
	Args: cobra.ExactArgs(1),
	RunE: remoteRunE,
}

func init() {
	remoteCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	remoteCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	remoteCmd.Flags().StringVar(&flagAppKey, "github-app-key", "", "GitHub App private key PEM content (or set GH_APP_PRIVATE_KEY env var)")
	remoteCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	remoteCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	remoteCmd.Flags().StringVar(&flagRef, "ref", "", "git ref to version: branch, tag, or SHA (default: repo default branch)")
	remoteCmd.Flags().IntVar(&flagMaxCommits, "max-commits", 1000, "maximum commit depth to walk via API")
	remoteCmd.Flags().StringVar(&flagRemoteConfigPath, "remote-config-path", "", "path to config file in the remote repo (e.g. .github/GitVersion.yml)")

	rootCmd.AddCommand(remoteCmd)
}

func remoteOptions(owner, repo string) gitsemver.RemoteOptions {
	return gitsemver.RemoteOptions{
		Owner:            owner,
		Repo:             repo,
		Token:            flagToken,
		AppID:            flagAppID,
		AppKey:           flagAppKey,
		AppKeyPath:       flagAppKeyPath,
		BaseURL:          flagGitHubURL,
		Ref:              flagRef,
		MaxCommits:       flagMaxCommits,
		Branch:           flagBranch,
		Commit:           flagCommit,
		ConfigPath:       flagConfig,
		RemoteConfigPath: flagRemoteConfigPath,
		Explain:          flagExplain,
		Logger:           logger,
	}
}

func remoteRunE(cmd *cobra.Command, args []string) error {
	owner, repo, err := ghprovider.ParseRepository(args[0])
	if err != nil {
		return err
	}
	opts := remoteOptions(owner, repo)
	out := cmd.OutOrStdout()

	if flagShowConfig {
		cfg, err := gitsemver.RemoteConfig(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return showConfig(out, cfg)
	}

	logger.Info("calculating remote version")
	result, err := gitsemver.CalculateRemote(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return writeResult(out, cmd.ErrOrStderr(), result)
}
