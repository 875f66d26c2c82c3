package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/calculator"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

func TestWriteExplanation_SelectedTag(t *testing.T) {
	tagged := git.Commit{Sha: "abc1234567890abcdef1234567890abcdef123456", Message: "release"}
	root := git.Commit{Sha: "def4567890abcdef1234567890abcdef12345678", Message: "initial"}
	count := int64(2)

	tagCandidate := strategy.Candidate{
		Source:    strategy.SourceExactTag,
		Version:   semver.SemanticVersion{Major: 1},
		Commit:    tagged,
		Increment: true,
		Explanation: &strategy.Explanation{
			Strategy: "TaggedCommit",
			Steps:    []string{"tag v1.0.0 on commit abc1234"},
		},
	}
	result := calculator.Result{
		Version: semver.SemanticVersion{Major: 1, Minor: 1, BuildMetaData: semver.BuildMetaData{CommitsSinceTag: &count}},
		Base:    tagCandidate,
		Candidates: []strategy.Candidate{
			tagCandidate,
			{Source: strategy.SourceFallback, Version: semver.SemanticVersion{}, Commit: root, Increment: true},
		},
		Warnings: []calculator.Warning{{Kind: calculator.UnparseableTag, Message: `tag "junk" is not a version`}},
		Explanation: &calculator.Explanation{Steps: []string{
			`commit abc1234 "feat: auth" -> Minor (Conventional Commits)`,
			"increment Minor",
		}},
	}

	out := FormatExplanation(result)
	require.Contains(t, out, "Candidates:")
	require.Contains(t, out, "ExactTag:")
	require.Contains(t, out, "1.0.0 (commit: abc1234, increment: true)")
	require.Contains(t, out, "tag v1.0.0 on commit abc1234")
	require.Contains(t, out, "MergeMessage:")
	require.Contains(t, out, "(none)")
	require.Contains(t, out, "Selected: ExactTag (1.0.0, commit: abc1234)")
	require.Contains(t, out, "increment Minor")
	require.Contains(t, out, `UnparseableTag: tag "junk" is not a version`)
	require.Contains(t, out, "Result: 1.1.0+2")
}

func TestWriteExplanation_TaggedHead(t *testing.T) {
	result := calculator.Result{
		Version:     semver.SemanticVersion{Major: 2},
		Explanation: &calculator.Explanation{Steps: []string{"commit abc1234 is tagged 2.0.0"}},
	}

	out := FormatExplanation(result)
	require.NotContains(t, out, "Candidates:")
	require.Contains(t, out, "is tagged 2.0.0")
	require.Contains(t, out, "Result: 2.0.0")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteExplanation_WriteError(t *testing.T) {
	err := WriteExplanation(failingWriter{}, calculator.Result{Version: semver.SemanticVersion{Major: 1}})
	require.EqualError(t, err, "closed")
}
