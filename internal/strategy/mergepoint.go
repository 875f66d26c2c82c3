package strategy

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// Inherited is the outcome of versioning a merge point on a source branch.
type Inherited struct {
	// Version is the source branch's selected base version.
	Version semver.SemanticVersion
	// Field is the increment the source branch applies to Version.
	Field semver.VersionField
}

// InheritFunc calculates the base version and increment of ctx, which is
// positioned at a merge point on a source branch.
type InheritFunc func(ctx *context.GitVersionContext) (Inherited, error)

// ParentBranchMergePointStrategy returns, for each source branch, the
// version inherited at its merge base with HEAD.
type ParentBranchMergePointStrategy struct {
	inherit InheritFunc
}

// NewParentBranchMergePointStrategy creates a new ParentBranchMergePointStrategy.
func NewParentBranchMergePointStrategy(inherit InheritFunc) *ParentBranchMergePointStrategy {
	return &ParentBranchMergePointStrategy{inherit: inherit}
}

func (s *ParentBranchMergePointStrategy) Name() string { return "ParentBranchMergePoint" }

func (s *ParentBranchMergePointStrategy) Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error) {
	// Mainline branches are the roots others fork from; they take merged
	// versions from tags and merge messages only.
	if ec.IsMainline || ctx.Depth >= ec.MaxSourceBranchDepth {
		return nil, nil
	}

	head := ctx.CurrentCommit
	var results []Candidate
	for _, src := range sourceBranches(ctx, ec) {
		mergeBase, ok := ctx.Store.FindMergeBase(head.Sha, src.Tip.Sha)
		if !ok || mergeBase.Sha == head.Sha {
			continue
		}

		inherited, err := s.inherit(ctx.At(src.Branch, mergeBase, src.Config))
		if err != nil {
			return nil, err
		}

		exp := NewExplanation(s.Name())
		exp.Addf("merge base with %q at %s inherits %s, increment %s",
			src.FriendlyName(), mergeBase.ShortSha(), inherited.Version.SemVer(), inherited.Field)

		results = append(results, Candidate{
			Source:         SourceParentBranchMergePoint,
			Version:        inherited.Version,
			Commit:         mergeBase,
			Increment:      true,
			InheritedField: inherited.Field,
			Description:    fmt.Sprintf("Merge point with '%s'", src.FriendlyName()),
			Explanation:    exp,
		})
	}
	return results, nil
}
