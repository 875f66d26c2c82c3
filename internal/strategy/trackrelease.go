package strategy

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
)

// TrackReleaseBranchesStrategy returns the versions of open release
// branches for branches that track them (e.g., develop). Each candidate is
// anchored at the merge base with the release branch.
type TrackReleaseBranchesStrategy struct{}

// NewTrackReleaseBranchesStrategy creates a new TrackReleaseBranchesStrategy.
func NewTrackReleaseBranchesStrategy() *TrackReleaseBranchesStrategy {
	return &TrackReleaseBranchesStrategy{}
}

func (s *TrackReleaseBranchesStrategy) Name() string { return "TrackReleaseBranches" }

func (s *TrackReleaseBranchesStrategy) Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error) {
	if !ec.TracksReleaseBranches {
		return nil, nil
	}

	var results []Candidate
	for _, releaseEC := range ctx.Configuration.ReleaseBranches() {
		for _, rb := range ctx.Store.BranchesMatching(releaseEC, ctx.BranchName()) {
			ver, _, ok := versionFromBranchName(rb.FriendlyName(), ec.TagPrefix)
			if !ok {
				continue
			}
			mergeBase, ok := ctx.Store.FindMergeBase(ctx.CurrentCommit.Sha, rb.Tip.Sha)
			if !ok || mergeBase.Sha == ctx.CurrentCommit.Sha {
				continue
			}

			exp := NewExplanation(s.Name())
			exp.Addf("release branch %q -> %s, merge base %s",
				rb.FriendlyName(), ver.SemVer(), mergeBase.ShortSha())

			results = append(results, Candidate{
				Source:      SourceTrackedReleaseBranch,
				Version:     ver,
				Commit:      mergeBase,
				Increment:   true,
				Description: fmt.Sprintf("Release branch exists '%s'", rb.FriendlyName()),
				Explanation: exp,
			})
		}
	}
	return results, nil
}
