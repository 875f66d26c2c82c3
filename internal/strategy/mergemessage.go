package strategy

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

const maxMergeMessageResults = 5

// MergeMessageStrategy returns versions named by merge commit messages:
// merges of versioned release branches and merges of version tags.
type MergeMessageStrategy struct{}

// NewMergeMessageStrategy creates a new MergeMessageStrategy.
func NewMergeMessageStrategy() *MergeMessageStrategy {
	return &MergeMessageStrategy{}
}

func (s *MergeMessageStrategy) Name() string { return "MergeMessage" }

func (s *MergeMessageStrategy) Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error) {
	parser, err := git.NewMergeMessageParser(ec.MergeMessageFormats)
	if err != nil {
		return nil, &config.ConfigurationError{Key: ec.Key, Field: "merge-message-formats", Err: err}
	}

	var results []Candidate
	for commit := range ctx.Graph().CommitsReachableFrom(ctx.CurrentCommit.Sha) {
		if len(results) >= maxMergeMessageResults {
			break
		}
		if c, ok := s.fromCommit(ctx, ec, parser, commit); ok {
			results = append(results, c)
		}
	}
	return results, nil
}

func (s *MergeMessageStrategy) fromCommit(ctx *context.GitVersionContext, ec config.EffectiveConfiguration, parser *git.MergeMessageParser, commit git.Commit) (Candidate, bool) {
	mm := parser.Parse(commit.Message, commit.IsMerge())
	if mm.IsEmpty() {
		return Candidate{}, false
	}
	merged := mm.SourceBranch()
	if merged == "" {
		return Candidate{}, false
	}

	exp := NewExplanation(s.Name())
	ver, ok := semver.TryParse(merged, ec.TagPrefix)
	switch {
	case ok:
		exp.Addf("commit %s: merge of version %q (format: %s)", commit.ShortSha(), merged, mm.Format)
	case isReleaseBranch(ctx.Configuration, merged):
		ver, _, ok = versionFromBranchName(merged, ec.TagPrefix)
		if !ok {
			return Candidate{}, false
		}
		exp.Addf("commit %s: merge of release branch %q (format: %s)", commit.ShortSha(), merged, mm.Format)
	default:
		return Candidate{}, false
	}

	increment := !ec.PreventIncrementOfMergedBranchVersion
	exp.Addf("-> %s, increment=%t", ver.SemVer(), increment)

	return Candidate{
		Source:      SourceMergeMessage,
		Version:     ver,
		Commit:      commit,
		Increment:   increment,
		Description: fmt.Sprintf("Merge message '%s'", commit.Subject()),
		Explanation: exp,
	}, true
}

func isReleaseBranch(resolved *config.ResolvedConfiguration, name string) bool {
	for _, ec := range resolved.ReleaseBranches() {
		if ec.MatchesBranch(name) {
			return true
		}
	}
	return false
}
