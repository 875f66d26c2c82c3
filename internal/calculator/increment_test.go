package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

func testEC() config.EffectiveConfiguration {
	return config.EffectiveConfiguration{
		Key:                       "main",
		Increment:                 semver.IncrementStrategyPatch,
		CommitMessageIncrementing: semver.CommitMessageIncrementEnabled,
		CommitMessageConvention:   semver.CommitMessageConventionBoth,
		MajorVersionBumpMessage:   `\+semver:\s?(breaking|major)`,
		MinorVersionBumpMessage:   `\+semver:\s?(feature|minor)`,
		PatchVersionBumpMessage:   `\+semver:\s?(fix|patch)`,
		NoBumpMessage:             `\+semver:\s?(none|skip)`,
	}
}

func msgs(messages ...string) []git.Commit {
	out := make([]git.Commit, len(messages))
	for i, m := range messages {
		out[i] = git.Commit{Sha: string(rune('a'+i)) + "000000000", Parents: []string{"p"}, Message: m}
	}
	return out
}

func TestResolveIncrement(t *testing.T) {
	v1 := semver.SemanticVersion{Major: 1}
	v0 := semver.SemanticVersion{Minor: 5}
	merge := git.Commit{Sha: "m000000000", Parents: []string{"p1", "p2"}, Message: "feat: merged login"}

	tests := []struct {
		name      string
		version   semver.SemanticVersion
		increment bool
		commits   []git.Commit
		edit      func(*config.EffectiveConfiguration)
		want      semver.VersionField
	}{
		{name: "empty range", version: v1, increment: true, want: semver.VersionFieldNone},
		{name: "candidate does not increment", version: v1, commits: msgs("feat: x"), want: semver.VersionFieldNone},
		{name: "no markers uses branch increment", version: v1, increment: true, commits: msgs("chore: tidy", "docs"), want: semver.VersionFieldPatch},
		{name: "feat bumps minor", version: v1, increment: true, commits: msgs("feat: login"), want: semver.VersionFieldMinor},
		{name: "highest marker wins", version: v1, increment: true, commits: msgs("fix: a", "feat!: b", "feat: c"), want: semver.VersionFieldMajor},
		{name: "breaking footer", version: v1, increment: true, commits: msgs("feat: api\n\nBREAKING CHANGE: removed v1"), want: semver.VersionFieldMajor},
		{name: "bump directive", version: v1, increment: true, commits: msgs("tweak +semver: minor"), want: semver.VersionFieldMinor},
		{name: "pre-1.0 caps major", version: v0, increment: true, commits: msgs("feat!: drop"), want: semver.VersionFieldMinor},
		{
			name: "pre-1.0 keeps configured major", version: v0, increment: true, commits: msgs("feat!: drop"),
			edit: func(ec *config.EffectiveConfiguration) { ec.Increment = semver.IncrementStrategyMajor },
			want: semver.VersionFieldMajor,
		},
		{name: "none marker alone", version: v1, increment: true, commits: msgs("docs +semver: none"), want: semver.VersionFieldNone},
		{name: "skip marker with positive marker", version: v1, increment: true, commits: msgs("+semver: skip", "feat: x"), want: semver.VersionFieldMinor},
		{
			name: "disabled ignores markers", version: v1, increment: true, commits: msgs("feat!: x", "+semver: none"),
			edit: func(ec *config.EffectiveConfiguration) {
				ec.CommitMessageIncrementing = semver.CommitMessageIncrementDisabled
			},
			want: semver.VersionFieldPatch,
		},
		{
			name: "merge message only skips direct commits", version: v1, increment: true, commits: msgs("feat: direct"),
			edit: func(ec *config.EffectiveConfiguration) {
				ec.CommitMessageIncrementing = semver.CommitMessageIncrementMergeMessageOnly
			},
			want: semver.VersionFieldPatch,
		},
		{
			name: "merge message only reads merges", version: v1, increment: true, commits: []git.Commit{merge},
			edit: func(ec *config.EffectiveConfiguration) {
				ec.CommitMessageIncrementing = semver.CommitMessageIncrementMergeMessageOnly
			},
			want: semver.VersionFieldMinor,
		},
		{
			name: "conventional only ignores directives", version: v1, increment: true, commits: msgs("+semver: major"),
			edit: func(ec *config.EffectiveConfiguration) {
				ec.CommitMessageConvention = semver.CommitMessageConventionConventionalCommits
			},
			want: semver.VersionFieldPatch,
		},
		{
			name: "directive only ignores conventional", version: v1, increment: true, commits: msgs("feat: x"),
			edit: func(ec *config.EffectiveConfiguration) {
				ec.CommitMessageConvention = semver.CommitMessageConventionBumpDirective
			},
			want: semver.VersionFieldPatch,
		},
		{
			name: "configured none raised by marker", version: v1, increment: true, commits: msgs("+semver: minor"),
			edit: func(ec *config.EffectiveConfiguration) { ec.Increment = semver.IncrementStrategyNone },
			want: semver.VersionFieldMinor,
		},
		{
			name: "configured none without markers", version: v1, increment: true, commits: msgs("wip"),
			edit: func(ec *config.EffectiveConfiguration) { ec.Increment = semver.IncrementStrategyNone },
			want: semver.VersionFieldNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := testEC()
			if tt.edit != nil {
				tt.edit(&ec)
			}
			candidate := strategy.Candidate{Version: tt.version, Increment: tt.increment}
			require.Equal(t, tt.want, ResolveIncrement(candidate, tt.commits, ec))
		})
	}
}

func TestResolveIncrementExplained(t *testing.T) {
	exp := &Explanation{}
	candidate := strategy.Candidate{Version: semver.SemanticVersion{Major: 1}, Increment: true}

	field := ResolveIncrementExplained(candidate, msgs("feat: login"), testEC(), exp)
	require.Equal(t, semver.VersionFieldMinor, field)
	require.NotEmpty(t, exp.Steps)
	require.Contains(t, exp.Steps[len(exp.Steps)-1], "Minor")
}

func TestAnalyzeConventionalCommit(t *testing.T) {
	tests := []struct {
		msg  string
		want semver.VersionField
	}{
		{"feat: add", semver.VersionFieldMinor},
		{"feat(api): add", semver.VersionFieldMinor},
		{"fix: bug", semver.VersionFieldPatch},
		{"FIX: bug", semver.VersionFieldPatch},
		{"refactor!: rename", semver.VersionFieldMajor},
		{"chore: deps", semver.VersionFieldNone},
		{"not conventional", semver.VersionFieldNone},
		{"docs: x\n\nBREAKING-CHANGE: y", semver.VersionFieldMajor},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			require.Equal(t, tt.want, analyzeConventionalCommit(tt.msg))
		})
	}
}

func TestTryMatch_InvalidPattern(t *testing.T) {
	require.False(t, tryMatch("anything", "("))
	require.False(t, tryMatch("anything", ""))
	require.True(t, tryMatch("+semver: fix", `\+semver:\s?(fix|patch)`))
}
