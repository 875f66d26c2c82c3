package context

import (
	"slices"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
)

// Options configures what the factory resolves.
type Options struct {
	// TargetBranch overrides HEAD. Empty string means use HEAD.
	TargetBranch string

	// CommitID overrides the branch tip. A full SHA or a unique prefix.
	CommitID string
}

// NewContext creates a GitVersionContext by resolving the target branch,
// current commit, effective configuration and version tag.
func NewContext(store *git.RepositoryStore, resolved *config.ResolvedConfiguration, opts Options) (*GitVersionContext, error) {
	graph := store.Graph()

	// 1. Resolve target branch (from option or HEAD).
	currentBranch := graph.Head()
	if opts.TargetBranch != "" {
		b, ok := store.FindBranch(opts.TargetBranch)
		if !ok {
			return nil, &git.RepositoryStateError{Ref: opts.TargetBranch, Err: git.ErrRefNotFound}
		}
		currentBranch = b
	}

	// 2. Get current commit (from SHA option or branch tip).
	currentCommit := *currentBranch.Tip
	if opts.CommitID != "" {
		c, err := store.ResolveCommit(opts.CommitID)
		if err != nil {
			return nil, err
		}
		currentCommit = c
	}

	// 3. Handle detached HEAD: find a branch containing this commit.
	if currentBranch.IsDetachedHead {
		if best, ok := pickBestBranch(store.BranchesContaining(currentCommit.Sha), resolved); ok {
			currentBranch = best
		}
	}

	// 4. Resolve the effective configuration.
	ec, err := resolved.Resolve(currentBranch.FriendlyName())
	if err != nil {
		return nil, err
	}

	ctx := &GitVersionContext{
		Store:                      store,
		Configuration:              resolved,
		CurrentBranch:              currentBranch,
		CurrentCommit:              currentCommit,
		Effective:                  ec,
		NumberOfUncommittedChanges: store.UncommittedChanges(),
	}

	// 5. Check for version tag on current commit.
	ctx.CurrentCommitTaggedVersion, ctx.IsCurrentCommitTagged = taggedVersion(store, currentCommit, ec)

	return ctx, nil
}

// pickBestBranch selects a branch for a detached HEAD. The branch whose
// configuration key comes first in match order wins; local branches are
// preferred over remote ones, then names sort lexically.
func pickBestBranch(branches []git.Branch, resolved *config.ResolvedConfiguration) (git.Branch, bool) {
	if len(branches) == 0 {
		return git.Branch{}, false
	}

	keys := resolved.Keys()
	rank := func(b git.Branch) int {
		ec, err := resolved.Resolve(b.FriendlyName())
		if err != nil {
			return len(keys)
		}
		return slices.Index(keys, ec.Key)
	}

	best := slices.MinFunc(branches, func(a, b git.Branch) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		if a.IsRemote != b.IsRemote {
			if a.IsRemote {
				return 1
			}
			return -1
		}
		switch {
		case a.FriendlyName() < b.FriendlyName():
			return -1
		case a.FriendlyName() > b.FriendlyName():
			return 1
		}
		return 0
	})
	return best, true
}
