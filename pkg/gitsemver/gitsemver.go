// Package gitsemver provides a public Go API for calculating semantic versions
// from git history. It supports both local repositories (via go-git) and remote
// GitHub repositories (via the GitHub API).
//
// Basic usage:
//
//	result, err := gitsemver.Calculate(gitsemver.LocalOptions{
//	    Path: "/path/to/repo",
//	})
//	fmt.Println(result.Variables["SemVer"]) // "1.2.3"
//
//	result, err := gitsemver.CalculateRemote(ctx, gitsemver.RemoteOptions{
//	    Owner: "myorg",
//	    Repo:  "myrepo",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
//	fmt.Println(result.Variables["FullSemVer"]) // "1.2.3+5"
package gitsemver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/calculator"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/output"

	configctx "github.com/MyCarrier-DevOps/go-gitversion/internal/context"

	ghprovider "github.com/MyCarrier-DevOps/go-gitversion/internal/github"
)

// LocalOptions configures version calculation from a local git repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Branch overrides the target branch. Empty means use HEAD.
	Branch string

	// Commit overrides the branch tip with a specific SHA. Empty means use tip.
	Commit string

	// ConfigPath is the path to a GitVersion YAML config file. If empty,
	// the repository root and its .github directory are searched.
	ConfigPath string

	// Explain populates ExplainResult on the returned Result.
	Explain bool

	// Concurrency limits parallel calculations in CalculateBranches.
	// Defaults to GOMAXPROCS.
	Concurrency int

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// RemoteOptions configures version calculation via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKey is the GitHub App private key PEM content.
	AppKey string

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Ref is the git ref to version: branch, tag, or SHA. Defaults to the
	// repository's default branch.
	Ref string

	// MaxCommits is the hard cap on commit walk depth. Defaults to 1000.
	MaxCommits int

	// Branch overrides the target branch for context resolution.
	Branch string

	// Commit overrides the branch tip with a specific SHA.
	Commit string

	// ConfigPath is a local config file path that overrides remote config.
	ConfigPath string

	// RemoteConfigPath names the config file in the remote repository.
	// Empty means search the known names in the root and .github.
	RemoteConfigPath string

	Explain bool
	Logger  *zap.Logger
}

// Result holds the calculated version and all output variables.
type Result struct {
	// Variables contains all output variables keyed by name.
	// Common keys: SemVer, FullSemVer, MajorMinorPatch, Major, Minor, Patch,
	// PreReleaseTag, PreReleaseNumber, CommitsSinceVersionSource, Sha, ShortSha,
	// BranchName, etc.
	Variables map[string]string

	// Warnings lists non-fatal problems such as unparseable tags.
	Warnings []string

	// ExplainResult contains the full explain output. Nil when Explain is false.
	ExplainResult *ExplainResult
}

// ExplainResult holds structured explain data for programmatic consumption.
type ExplainResult struct {
	// Candidates lists all candidate base versions evaluated by strategies.
	Candidates []ExplainCandidate

	// SelectedSource names the winning candidate source. Empty when HEAD is tagged.
	SelectedSource string

	// IncrementField is the increment applied (e.g. "Minor", "Patch", "None").
	IncrementField string

	// Steps records the reasoning of the calculation in order.
	Steps []string

	// FinalVersion is the fully-qualified version string.
	FinalVersion string

	// FormattedOutput is the human-readable explain text (same as CLI --explain).
	FormattedOutput string
}

// ExplainCandidate describes a single candidate base version.
type ExplainCandidate struct {
	// Source is the kind of candidate, such as "ExactTag" or "Fallback".
	Source string

	// Version is the semantic version string (e.g. "1.2.0").
	Version string

	// Commit is the short SHA the candidate is anchored at.
	Commit string

	// ShouldIncrement indicates whether this candidate would be incremented.
	ShouldIncrement bool

	// Steps records the reasoning chain for how the candidate was derived.
	Steps []string
}

// Calculate computes the next semantic version from a local git repository.
func Calculate(opts LocalOptions) (*Result, error) {
	e, err := openLocal(opts)
	if err != nil {
		return nil, err
	}
	return e.run(opts.Branch, opts.Commit, opts.Explain)
}

// CalculateBranches computes versions for several branches of one local
// repository concurrently. The snapshot and the memo are shared. Results
// are returned in the order of branches. If ctx is cancelled or any branch
// fails, no results are returned.
func CalculateBranches(ctx context.Context, opts LocalOptions, branches []string) ([]*Result, error) {
	e, err := openLocal(opts)
	if err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(branches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, branch := range branches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := e.run(branch, "", opts.Explain)
			if err != nil {
				return fmt.Errorf("branch %s: %w", branch, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// CalculateRemote computes the next semantic version via the GitHub API.
func CalculateRemote(ctx context.Context, opts RemoteOptions) (*Result, error) {
	ghRepo, cfg, err := openRemote(ctx, opts)
	if err != nil {
		return nil, err
	}
	e, err := newEngine(ghRepo, cfg, opts.Logger)
	if err != nil {
		return nil, err
	}
	return e.run(opts.Branch, opts.Commit, opts.Explain)
}

// LocalConfig returns the configuration Calculate would use for opts,
// defaults included.
func LocalConfig(opts LocalOptions) (*config.Config, error) {
	_, cfg, err := openLocalConfig(opts)
	return cfg, err
}

// RemoteConfig returns the configuration CalculateRemote would use for opts.
func RemoteConfig(ctx context.Context, opts RemoteOptions) (*config.Config, error) {
	_, cfg, err := openRemote(ctx, opts)
	return cfg, err
}

func openRemote(ctx context.Context, opts RemoteOptions) (*ghprovider.GitHubRepository, *config.Config, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, nil, errors.New("owner and repo are required")
	}

	// 1. Create GitHub client.
	client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKey:     opts.AppKey,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	// 2. Create GitHubRepository.
	ghOpts := []ghprovider.Option{
		ghprovider.WithContext(ctx),
		ghprovider.WithMaxCommits(opts.MaxCommits),
	}
	if opts.Ref != "" {
		ghOpts = append(ghOpts, ghprovider.WithRef(opts.Ref))
	}
	ghRepo := ghprovider.NewGitHubRepository(client, opts.Owner, opts.Repo, ghOpts...)

	// 3. Load configuration.
	cfg, err := LoadRemoteConfig(opts.ConfigPath, opts.RemoteConfigPath, ghRepo)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	return ghRepo, cfg, nil
}

func openLocalConfig(opts LocalOptions) (*git.GoGitRepository, *config.Config, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := LoadLocalConfig(opts.ConfigPath, repo.WorkingDirectory())
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	return repo, cfg, nil
}

func openLocal(opts LocalOptions) (*engine, error) {
	repo, cfg, err := openLocalConfig(opts)
	if err != nil {
		return nil, err
	}
	return newEngine(repo, cfg, opts.Logger)
}

// engine holds what one repository's calculations share.
type engine struct {
	store    *git.RepositoryStore
	resolved *config.ResolvedConfiguration
	calc     *calculator.NextVersionCalculator
	logger   *zap.Logger
}

func newEngine(repo git.Repository, cfg *config.Config, logger *zap.Logger) (*engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	snap, err := git.LoadSnapshot(repo)
	if err != nil {
		return nil, fmt.Errorf("loading repository: %w", err)
	}

	resolved, err := config.Flatten(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving configuration: %w", err)
	}

	memo, err := calculator.NewMemo(calculator.DefaultMemoSize)
	if err != nil {
		return nil, err
	}

	return &engine{
		store:    git.NewRepositoryStore(snap),
		resolved: resolved,
		calc:     calculator.NewNextVersionCalculator(calculator.WithLogger(logger), calculator.WithMemo(memo)),
		logger:   logger,
	}, nil
}

func (e *engine) run(branch, commit string, explain bool) (*Result, error) {
	vctx, err := configctx.NewContext(e.store, e.resolved, configctx.Options{
		TargetBranch: branch,
		CommitID:     commit,
	})
	if err != nil {
		return nil, fmt.Errorf("building context: %w", err)
	}

	result, err := e.calc.Calculate(vctx)
	if err != nil {
		return nil, fmt.Errorf("calculating version: %w", err)
	}

	r := &Result{Variables: output.GetVariables(result.Version, vctx.Effective)}
	for _, w := range result.Warnings {
		e.logger.Warn(w.Message, zap.Stringer("kind", w.Kind))
		r.Warnings = append(r.Warnings, w.String())
	}
	if explain {
		r.ExplainResult = buildExplainResult(result)
	}
	return r, nil
}

// buildExplainResult maps calculator.Result to the public ExplainResult.
func buildExplainResult(result calculator.Result) *ExplainResult {
	er := &ExplainResult{
		IncrementField:  result.Increment.String(),
		FinalVersion:    result.Version.FullSemVer(),
		FormattedOutput: output.FormatExplanation(result),
	}
	if result.Explanation != nil {
		er.Steps = result.Explanation.Steps
	}
	if !result.Base.Commit.IsEmpty() {
		er.SelectedSource = result.Base.Source.String()
	}

	for _, c := range result.Candidates {
		ec := ExplainCandidate{
			Source:          c.Source.String(),
			Version:         c.Version.SemVer(),
			Commit:          c.Commit.ShortSha(),
			ShouldIncrement: c.Increment,
		}
		if c.Explanation != nil {
			ec.Steps = c.Explanation.Steps
		}
		er.Candidates = append(er.Candidates, ec)
	}
	return er
}

// LoadLocalConfig loads configuration from a file path or auto-detects it
// in workDir, layered over the defaults.
func LoadLocalConfig(configPath, workDir string) (*config.Config, error) {
	builder := config.NewBuilder()

	if configPath == "" && workDir != "" {
		configPath = config.FindConfigFile(workDir)
	}

	if configPath != "" {
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(userCfg)
	}

	return builder.Build()
}

// LoadRemoteConfig loads configuration from a local override, from
// remotePath in the remote repository, or from the first configuration file
// found in the remote repository root or .github directory.
func LoadRemoteConfig(configPath, remotePath string, ghRepo *ghprovider.GitHubRepository) (*config.Config, error) {
	builder := config.NewBuilder()

	if configPath != "" {
		userCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		return builder.Add(userCfg).Build()
	}

	candidates := []string{remotePath}
	if remotePath == "" {
		candidates = candidates[:0]
		for _, dir := range []string{"", ".github/"} {
			for _, name := range config.ConfigFileNames {
				candidates = append(candidates, dir+name)
			}
		}
	}

	for _, name := range candidates {
		content, err := ghRepo.FetchFileContent(name)
		if err != nil {
			// An explicit path must exist.
			if remotePath == "" && ghprovider.IsNotFoundError(err) {
				continue
			}
			return nil, fmt.Errorf("fetching remote config %s: %w", name, err)
		}
		userCfg, err := config.LoadFromBytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("parsing remote config %s: %w", name, err)
		}
		return builder.Add(userCfg).Build()
	}

	return builder.Build()
}
