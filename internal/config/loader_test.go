package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

func TestLoadFromBytes_Full(t *testing.T) {
	data := []byte(`
mode: ContinuousDeployment
assembly-versioning-scheme: MajorMinor
tag-prefix: 'release-'
next-version: 2.0.0
increment: Minor
strategies: [Fallback, TaggedCommit]
max-source-branch-depth: 3
branches:
  staging:
    regex: ^staging$
    label: rc
    increment: None
  develop:
    label: null
  qa:
    regex: ^qa$
    tag: ''
    source-branches: [main]
merge-message-formats:
  tfs: '^Merged (?:PR (?P<PullRequestNumber>\d+)): Merge (?P<SourceBranch>.+) to (?P<TargetBranch>.+)'
`)
	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	require.Equal(t, semver.DeploymentModeContinuousDeployment, *cfg.Mode)
	require.Equal(t, semver.AssemblyVersioningSchemeMajorMinor, *cfg.AssemblyVersioningScheme)
	require.Equal(t, "release-", *cfg.TagPrefix)
	require.Equal(t, "2.0.0", *cfg.NextVersion)
	require.Equal(t, semver.IncrementStrategyMinor, *cfg.Increment)
	require.Equal(t, []semver.StrategyKind{semver.StrategyFallback, semver.StrategyTaggedCommit}, *cfg.Strategies)
	require.Equal(t, 3, *cfg.MaxSourceBranchDepth)
	require.Nil(t, cfg.Label)

	require.Equal(t, []string{"staging", "develop", "qa"}, cfg.Branches.Names())

	staging, _ := cfg.Branches.Get("staging")
	require.Equal(t, "rc", staging.Label.Value())
	require.False(t, staging.Label.IsNone())

	develop, _ := cfg.Branches.Get("develop")
	require.True(t, develop.Label.IsNone())

	qa, _ := cfg.Branches.Get("qa")
	require.NotNil(t, qa.Label)
	require.False(t, qa.Label.IsNone())
	require.Equal(t, "", qa.Label.Value())
	require.Equal(t, []string{"main"}, *qa.SourceBranches)

	require.Contains(t, cfg.MergeMessageFormats, "tfs")
}

func TestLoadFromBytes_MergedOverDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
branches:
  staging:
    regex: ^staging$
    label: rc
  develop:
    label: null
`))
	require.NoError(t, err)

	built, err := NewBuilder().Add(cfg).Build()
	require.NoError(t, err)
	names := built.Branches.Names()
	require.Equal(t, "staging", names[len(names)-2])

	r, err := Flatten(built)
	require.NoError(t, err)
	develop, err := r.Resolve("develop")
	require.NoError(t, err)
	_, hasLabel := develop.LabelFor("develop")
	require.False(t, hasLabel)

	staging, err := r.Resolve("staging")
	require.NoError(t, err)
	label, _ := staging.LabelFor("staging")
	require.Equal(t, "rc", label)
}

func TestLoadFromBytes_GlobalNullLabel(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("label: ~\n"))
	require.NoError(t, err)
	require.True(t, cfg.Label.IsNone())
}

func TestLoadFromBytes_Empty(t *testing.T) {
	cfg, err := LoadFromBytes(nil)
	require.NoError(t, err)
	require.Nil(t, cfg.Mode)
	require.Empty(t, cfg.Branches)
}

func TestLoadFromBytes_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "mode: [unterminated"},
		{"bad enum", "mode: Sometimes"},
		{"bad increment", "branches:\n  main:\n    increment: Sideways\n"},
		{"branches not a mapping", "branches: [main]"},
		{"bad strategy", "strategies: [Guess]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data))
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GitVersion.yml")
	require.NoError(t, os.WriteFile(path, []byte("tag-prefix: v\n"), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "v", *cfg.TagPrefix)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{"none", nil, ""},
		{"root", []string{"GitVersion.yml"}, "GitVersion.yml"},
		{"name order", []string{".gitversion.yml", "GitVersion.yaml"}, "GitVersion.yaml"},
		{"github dir", []string{".github/GitVersion.yml"}, ".github/GitVersion.yml"},
		{"root before github dir", []string{".github/GitVersion.yml", "gitversion.yml"}, "gitversion.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				path := filepath.Join(dir, filepath.FromSlash(f))
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte("mode: ContinuousDelivery\n"), 0o600))
			}
			got := FindConfigFile(dir)
			if tt.expected == "" {
				require.Empty(t, got)
				return
			}
			require.Equal(t, filepath.Join(dir, filepath.FromSlash(tt.expected)), got)
		})
	}
}

func TestBranchConfigs_MarshalYAMLKeepsOrder(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("branches:\n  zeta:\n    regex: ^z$\n  alpha:\n    regex: ^a$\n    label: null\n"))
	require.NoError(t, err)

	out, err := cfg.Branches.MarshalYAML()
	require.NoError(t, err)
	require.NotNil(t, out)

	reparsed, err := LoadFromBytes(mustYAML(t, map[string]any{"branches": out}))
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha"}, reparsed.Branches.Names())
	alpha, _ := reparsed.Branches.Get("alpha")
	require.True(t, alpha.Label.IsNone())
}
