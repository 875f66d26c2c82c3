package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/testutil"
)

func newContext(t *testing.T, g *testutil.Graph, override *config.Config, opts context.Options) *context.GitVersionContext {
	t.Helper()
	cfg, err := config.NewBuilder().Add(override).Build()
	require.NoError(t, err)
	resolved, err := config.Flatten(cfg)
	require.NoError(t, err)
	ctx, err := context.NewContext(g.Store(), resolved, opts)
	require.NoError(t, err)
	return ctx
}

func TestEnabled(t *testing.T) {
	inherit := func(*context.GitVersionContext) (Inherited, error) { return Inherited{}, nil }

	names := func(strategies []VersionStrategy) []string {
		out := make([]string, len(strategies))
		for i, s := range strategies {
			out[i] = s.Name()
		}
		return out
	}

	all := Enabled(semver.DefaultStrategies(), inherit)
	require.Equal(t, []string{
		"TaggedCommit",
		"VersionInBranchName",
		"MergeMessage",
		"TrackReleaseBranches",
		"ParentBranchMergePoint",
		"Fallback",
	}, names(all))

	require.NotContains(t, names(Enabled(semver.DefaultStrategies(), nil)), "ParentBranchMergePoint")
	require.Empty(t, Enabled([]semver.StrategyKind{semver.StrategyMainline, semver.StrategyConfiguredNextVersion}, inherit))
}

func TestFallbackStrategy(t *testing.T) {
	g := testutil.NewGraph(t)
	root := g.Commit("A")
	g.Commits(3)
	ctx := newContext(t, g, &config.Config{BaseVersion: config.Ptr("1.0.0")}, context.Options{})

	candidates, err := NewFallbackStrategy().Candidates(ctx, ctx.Effective)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "1.0.0", candidates[0].Version.SemVer())
	require.Equal(t, root, candidates[0].Commit.Sha)
	require.True(t, candidates[0].Increment)
	require.Equal(t, SourceFallback, candidates[0].Source)

	ec := ctx.Effective
	ec.BaseVersion = "one"
	_, err = NewFallbackStrategy().Candidates(ctx, ec)
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "base-version", cfgErr.Field)
}

func TestTaggedCommitStrategy(t *testing.T) {
	g := testutil.NewGraph(t)
	a := g.Commit("A")
	g.Tag("v1.0.0")
	g.Tag("junk")
	head := g.Commit("B")
	g.Tag("1.1.0")
	ctx := newContext(t, g, nil, context.Options{})

	s := NewTaggedCommitStrategy()
	candidates, err := s.Candidates(ctx, ctx.Effective)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	byVersion := map[string]Candidate{}
	for _, c := range candidates {
		byVersion[c.Version.SemVer()] = c
	}
	require.Equal(t, a, byVersion["1.0.0"].Commit.Sha)
	require.True(t, byVersion["1.0.0"].Increment)
	require.Equal(t, head, byVersion["1.1.0"].Commit.Sha)
	require.False(t, byVersion["1.1.0"].Increment)

	warnings := s.Warnings(ctx, ctx.Effective)
	require.Len(t, warnings, 1)
	require.Equal(t, WarningUnparseableTag, warnings[0].Kind)
	require.Contains(t, warnings[0].Message, "junk")
}

func TestVersionInBranchNameStrategy(t *testing.T) {
	g := testutil.NewGraph(t)
	a := g.Commit("A")
	g.Branch("release/1.2.0")
	g.Commit("R1")
	g.Checkout("main")
	g.Branch("feature/2.0.0")
	g.Commit("F1")

	t.Run("release branch", func(t *testing.T) {
		ctx := newContext(t, g, nil, context.Options{TargetBranch: "release/1.2.0"})
		candidates, err := NewVersionInBranchNameStrategy().Candidates(ctx, ctx.Effective)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		require.Equal(t, "1.2.0", candidates[0].Version.SemVer())
		require.Equal(t, a, candidates[0].Commit.Sha)
		require.False(t, candidates[0].Increment)
		require.Equal(t, "release", candidates[0].BranchNameOverride)
	})

	t.Run("not a release branch", func(t *testing.T) {
		ctx := newContext(t, g, nil, context.Options{TargetBranch: "feature/2.0.0"})
		candidates, err := NewVersionInBranchNameStrategy().Candidates(ctx, ctx.Effective)
		require.NoError(t, err)
		require.Empty(t, candidates)
	})
}

func TestComputeBranchNameOverride(t *testing.T) {
	tests := []struct {
		branch, version, want string
	}{
		{"release/1.2.0", "1.2.0", "release"},
		{"release-1.2.0", "1.2.0", "release"},
		{"releases/1.2.0/hotfix", "1.2.0", "releases/hotfix"},
	}
	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			require.Equal(t, tt.want, computeBranchNameOverride(tt.branch, tt.version))
		})
	}
}

func TestMergeMessageStrategy(t *testing.T) {
	g := testutil.NewGraph(t)
	g.Commit("A")
	g.Branch("release/1.2.0")
	g.Commit("R1")
	g.Checkout("main")
	merge := g.Merge("release/1.2.0", "")
	g.Commit("B")
	g.Commit("Merge pull request #7 from org/feature/login")

	t.Run("main prevents increment", func(t *testing.T) {
		ctx := newContext(t, g, nil, context.Options{})
		candidates, err := NewMergeMessageStrategy().Candidates(ctx, ctx.Effective)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		require.Equal(t, "1.2.0", candidates[0].Version.SemVer())
		require.Equal(t, merge, candidates[0].Commit.Sha)
		require.False(t, candidates[0].Increment)
		require.Equal(t, SourceMergeMessage, candidates[0].Source)
	})

	t.Run("increment allowed", func(t *testing.T) {
		ctx := newContext(t, g, &config.Config{Branches: config.BranchConfigs{{
			Name:   "main",
			Config: &config.BranchConfig{PreventIncrementOfMergedBranchVersion: config.Ptr(false)},
		}}}, context.Options{})
		candidates, err := NewMergeMessageStrategy().Candidates(ctx, ctx.Effective)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		require.True(t, candidates[0].Increment)
	})
}

func TestTrackReleaseBranchesStrategy(t *testing.T) {
	g := testutil.NewGraph(t)
	g.Commit("A")
	g.Branch("develop")
	d1 := g.Commit("D1")
	g.Branch("release/2.0.0")
	g.Commit("R1")
	g.Checkout("develop")
	g.Commit("D2")

	ctx := newContext(t, g, nil, context.Options{})
	require.Equal(t, "develop", ctx.Effective.Key)

	candidates, err := NewTrackReleaseBranchesStrategy().Candidates(ctx, ctx.Effective)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "2.0.0", candidates[0].Version.SemVer())
	require.Equal(t, d1, candidates[0].Commit.Sha)
	require.True(t, candidates[0].Increment)

	mainCtx := newContext(t, g, nil, context.Options{TargetBranch: "main"})
	candidates, err = NewTrackReleaseBranchesStrategy().Candidates(mainCtx, mainCtx.Effective)
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestParentBranchMergePointStrategy(t *testing.T) {
	g := testutil.NewGraph(t)
	g.Commit("A")
	g.Branch("develop")
	d1 := g.Commit("D1")
	g.Branch("feature/login")
	g.Commit("F1")

	var visited []string
	inherit := func(ctx *context.GitVersionContext) (Inherited, error) {
		visited = append(visited, ctx.BranchName())
		require.Equal(t, 1, ctx.Depth)
		return Inherited{Version: semver.SemanticVersion{Major: 3}, Field: semver.VersionFieldMinor}, nil
	}

	ctx := newContext(t, g, nil, context.Options{})
	candidates, err := NewParentBranchMergePointStrategy(inherit).Candidates(ctx, ctx.Effective)
	require.NoError(t, err)
	require.Equal(t, []string{"develop", "main"}, visited)
	require.Len(t, candidates, 2)
	require.Equal(t, d1, candidates[0].Commit.Sha)
	require.Equal(t, "3.0.0", candidates[0].Version.SemVer())
	require.Equal(t, semver.VersionFieldMinor, candidates[0].InheritedField)
	require.Equal(t, SourceParentBranchMergePoint, candidates[0].Source)

	t.Run("depth limit", func(t *testing.T) {
		ec := ctx.Effective
		ec.MaxSourceBranchDepth = 0
		candidates, err := NewParentBranchMergePointStrategy(inherit).Candidates(ctx, ec)
		require.NoError(t, err)
		require.Empty(t, candidates)
	})
}

func TestParentBranchMergePointStrategy_MainlineDoesNotInherit(t *testing.T) {
	g := testutil.NewGraph(t)
	g.Commit("A")
	g.Commit("M1")
	g.Branch("develop")
	g.Commit("D1")
	g.Checkout("main")
	g.Branch("release/2.0.0")
	g.Commit("R1")
	g.Checkout("main")
	g.Commit("M2")

	inherit := func(ctx *context.GitVersionContext) (Inherited, error) {
		t.Fatalf("unexpected inherit from %s", ctx.BranchName())
		return Inherited{}, nil
	}

	ctx := newContext(t, g, nil, context.Options{TargetBranch: "main"})
	require.True(t, ctx.Effective.IsMainline)
	candidates, err := NewParentBranchMergePointStrategy(inherit).Candidates(ctx, ctx.Effective)
	require.NoError(t, err)
	require.Empty(t, candidates)
}
