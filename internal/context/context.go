// Package context provides the GitVersionContext, the immutable view of
// git state and configuration used for one version calculation.
package context

import (
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// GitVersionContext holds the resolved state needed for version calculation.
// It is created once per calculation and passed to all strategies. Source
// branch recursion derives scoped copies with At.
type GitVersionContext struct {
	// Store answers commit graph queries.
	Store *git.RepositoryStore

	// Configuration is the flattened configuration for every branch key.
	Configuration *config.ResolvedConfiguration

	// CurrentBranch is the branch being versioned.
	CurrentBranch git.Branch

	// CurrentCommit is the commit being versioned (branch tip or explicit SHA).
	CurrentCommit git.Commit

	// Effective is the configuration resolved for CurrentBranch.
	Effective config.EffectiveConfiguration

	// CurrentCommitTaggedVersion is the highest version tag on the current
	// commit. Only meaningful when IsCurrentCommitTagged is true.
	CurrentCommitTaggedVersion semver.SemanticVersion

	// IsCurrentCommitTagged is true when the current commit has a version tag.
	IsCurrentCommitTagged bool

	// NumberOfUncommittedChanges counts dirty working directory entries.
	NumberOfUncommittedChanges int

	// Depth counts source branch recursion levels; 0 for the requested commit.
	Depth int
}

// Graph returns the commit graph being versioned.
func (ctx *GitVersionContext) Graph() git.Graph {
	return ctx.Store.Graph()
}

// BranchName returns the friendly name of the branch being versioned.
func (ctx *GitVersionContext) BranchName() string {
	return ctx.CurrentBranch.FriendlyName()
}

// At returns a copy of the context positioned at commit on branch, one
// recursion level deeper, using ec as the effective configuration. The tag
// state is recomputed for the new commit.
func (ctx *GitVersionContext) At(branch git.Branch, commit git.Commit, ec config.EffectiveConfiguration) *GitVersionContext {
	scoped := *ctx
	scoped.CurrentBranch = branch
	scoped.CurrentCommit = commit
	scoped.Effective = ec
	scoped.Depth = ctx.Depth + 1
	scoped.CurrentCommitTaggedVersion, scoped.IsCurrentCommitTagged = taggedVersion(ctx.Store, commit, ec)
	return &scoped
}

func taggedVersion(store *git.RepositoryStore, commit git.Commit, ec config.EffectiveConfiguration) (semver.SemanticVersion, bool) {
	tags := store.ExactVersionTags(commit.Sha, ec.TagPrefix)
	if len(tags) == 0 {
		return semver.SemanticVersion{}, false
	}
	return tags[0].Version, true
}
