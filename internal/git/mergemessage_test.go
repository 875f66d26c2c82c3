package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, custom map[string]string) *MergeMessageParser {
	t.Helper()
	p, err := NewMergeMessageParser(custom)
	require.NoError(t, err)
	return p
}

func TestMergeMessageParser_BuiltInFormats(t *testing.T) {
	tests := []struct {
		name    string
		message string
		format  string
		source  string
		target  string
		pr      int
	}{
		{"default branch only", "Merge branch 'release/1.2.0'", "Default", "release/1.2.0", "", 0},
		{"default into target", "Merge branch 'release/1.2.0' into main", "Default", "release/1.2.0", "main", 0},
		{"default tag", "Merge tag 'v2.0.0' into develop", "Default", "v2.0.0", "develop", 0},
		{"default lowercase", "merge branch 'feature/auth'", "Default", "feature/auth", "", 0},
		{"gitlab quoted target", "Merge branch 'hotfix/1.0.1' into 'main'", "Default", "hotfix/1.0.1", "main", 0},
		{"smartgit", "Finish release/1.2.0 into main", "SmartGit", "release/1.2.0", "main", 0},
		{"bitbucket", "Merge pull request #123 from myteam/myrepo from release/1.2.0 to main", "BitBucketPull", "release/1.2.0", "main", 123},
		{"bitbucket v7", "Pull request #456: Feature X\n\nMerge in myproject from feature/x to main", "BitBucketPullv7", "feature/x", "main", 456},
		{"github from", "Merge pull request #42 from user/release/1.2.0", "GitHubPull", "user/release/1.2.0", "", 42},
		{"github in into", "Merge pull request #99 in release/1.2.0 into main", "GitHubPull", "release/1.2.0", "main", 99},
		{"remote tracking", "Merge remote-tracking branch 'origin/release/1.2.0' into develop", "RemoteTracking", "origin/release/1.2.0", "develop", 0},
		{"github squash", "feat: add login page (#123)", "GitHubSquash", "", "", 123},
		{"bitbucket squash", "Merged in feature/auth (pull request #42)", "BitBucketSquash", "feature/auth", "", 42},
	}
	p := newParser(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm := p.Parse(tt.message, true)
			require.False(t, mm.IsEmpty())
			require.Equal(t, tt.format, mm.Format)
			require.Equal(t, tt.source, mm.Source)
			require.Equal(t, tt.target, mm.Target)
			require.Equal(t, tt.pr, mm.PullRequest)
			require.Equal(t, tt.pr > 0, mm.IsPullRequest())
		})
	}
}

func TestMergeMessageParser_SingleParentOnlySquash(t *testing.T) {
	p := newParser(t, map[string]string{"custom": `^Merge (?P<SourceBranch>\S+)`})

	require.True(t, p.Parse("Merge branch 'release/1.2.0' into main", false).IsEmpty())
	require.True(t, p.Parse("Merge release/1.2.0", false).IsEmpty())

	mm := p.Parse("Merged in release/1.2.0 (pull request #42)", false)
	require.Equal(t, "BitBucketSquash", mm.Format)
	require.Equal(t, "release/1.2.0", mm.SourceBranch())
}

func TestMergeMessageParser_CustomFormats(t *testing.T) {
	p := newParser(t, map[string]string{
		"azure":  `^Merged PR (?P<PullRequestNumber>\d+): .*$`,
		"custom": `^Merge branch '(?P<SourceBranch>[^']*)'$`,
	})

	mm := p.Parse("Merged PR 789: Fix auth bug", true)
	require.Equal(t, "azure", mm.Format)
	require.Equal(t, 789, mm.PullRequest)

	mm = p.Parse("Merge branch 'release/1.0.0'", true)
	require.Equal(t, "custom", mm.Format)
	require.Equal(t, "release/1.0.0", mm.Source)

	mm = p.Parse("Merge branch 'main' into develop", true)
	require.Equal(t, "Default", mm.Format)
}

func TestMergeMessageParser_CustomFormatsInNameOrder(t *testing.T) {
	p := newParser(t, map[string]string{
		"zeta":  `^Merge (?P<SourceBranch>\S+)`,
		"alpha": `^Merge (?P<SourceBranch>\S+)`,
	})
	for range 10 {
		require.Equal(t, "alpha", p.Parse("Merge thing", true).Format)
	}
}

func TestMergeMessageParser_InvalidCustomFormat(t *testing.T) {
	_, err := NewMergeMessageParser(map[string]string{"bad": "[invalid"})
	require.ErrorContains(t, err, `"bad"`)
}

func TestMergeMessageParser_NoMatch(t *testing.T) {
	p := newParser(t, nil)
	for _, message := range []string{"feat: add login page", "Initial commit", ""} {
		require.True(t, p.Parse(message, true).IsEmpty(), "expected no match for %q", message)
	}
}

func TestMergeMessage_SourceBranch(t *testing.T) {
	tests := []struct {
		source string
		expect string
	}{
		{"release/1.2.0", "release/1.2.0"},
		{"origin/release/1.2.0", "release/1.2.0"},
		{"upstream/develop", "develop"},
		{"refs/remotes/origin/main", "main"},
		{"refs/heads/feature/x", "feature/x"},
		{"user/release/1.2.0", "user/release/1.2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			require.Equal(t, tt.expect, MergeMessage{Source: tt.source}.SourceBranch())
		})
	}
}
