package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	workDir string
}

// Open opens a git repository at the given path, searching parent
// directories for the .git directory.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	repo := NewGoGitRepository(r)
	if wt, err := r.Worktree(); err == nil {
		repo.workDir = wt.Filesystem.Root()
	}
	return repo, nil
}

// NewGoGitRepository wraps an already opened go-git repository, such as one
// backed by in-memory storage.
func NewGoGitRepository(r *gogit.Repository) *GoGitRepository {
	return &GoGitRepository{repo: r}
}

// WorkingDirectory returns the worktree root, or "" for bare repositories.
func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

// GitDir returns the .git directory path, or "" for bare repositories.
func (r *GoGitRepository) GitDir() string {
	if r.workDir == "" {
		return ""
	}
	return filepath.Join(r.workDir, ".git")
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Branch{}, fmt.Errorf("getting HEAD: %w", ErrNoHead)
		}
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.commitFromHash(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}

	return Branch{
		Name:           NewReferenceName(string(ref.Name())),
		Tip:            &commit,
		IsDetachedHead: !ref.Name().IsBranch(),
	}, nil
}

func (r *GoGitRepository) Branches() ([]Branch, error) {
	refIter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	var branches []Branch
	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsBranch() && !name.IsRemote() {
			return nil
		}
		if ref.Type() != plumbing.HashReference {
			return nil // e.g. refs/remotes/origin/HEAD
		}
		commit, err := r.commitFromHash(ref.Hash())
		if err != nil {
			return nil // skip branches we can't resolve
		}
		branches = append(branches, Branch{
			Name:     NewReferenceName(string(name)),
			Tip:      &commit,
			IsRemote: name.IsRemote(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}

	return branches, nil
}

func (r *GoGitRepository) Tags() ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, Tag{
			Name:      NewReferenceName(string(ref.Name())),
			TargetSha: ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

func (r *GoGitRepository) CommitFromSha(sha string) (Commit, error) {
	return r.commitFromHash(plumbing.NewHash(sha))
}

// CommitLog returns commits reachable from 'to' that are not reachable from
// 'from', in committer time order.
func (r *GoGitRepository) CommitLog(from, to string) ([]Commit, error) {
	exclude := make(map[plumbing.Hash]struct{})
	if from != "" {
		fromIter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(from)})
		if err != nil {
			return nil, fmt.Errorf("getting commit log for %s: %w", from, err)
		}
		err = fromIter.ForEach(func(c *object.Commit) error {
			exclude[c.Hash] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("iterating commits: %w", err)
		}
	}

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  plumbing.NewHash(to),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("getting commit log for %s: %w", to, err)
	}

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if _, ok := exclude[c.Hash]; ok {
			return nil
		}
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	return commits, nil
}

func (r *GoGitRepository) NumberOfUncommittedChanges() (int, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return 0, fmt.Errorf("getting worktree status: %w", err)
	}

	count := 0
	for _, s := range status {
		if s.Staging != gogit.Unmodified || s.Worktree != gogit.Unmodified {
			count++
		}
	}

	return count, nil
}

func (r *GoGitRepository) PeelTagToCommit(tag Tag) (string, error) {
	hash := plumbing.NewHash(tag.TargetSha)

	// Annotated tags, possibly nested.
	tagObj, err := r.repo.TagObject(hash)
	if err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return "", fmt.Errorf("peeling annotated tag %s: %w", tag.Name.Friendly, err)
		}
		return commit.Hash.String(), nil
	}

	if _, err := r.repo.CommitObject(hash); err != nil {
		return "", fmt.Errorf("tag %s does not point to a commit: %w", tag.Name.Friendly, err)
	}

	return tag.TargetSha, nil
}

// commitFromHash loads a go-git commit and converts it to our Commit type.
func (r *GoGitRepository) commitFromHash(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), ErrRefNotFound)
		}
		return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return convertCommit(c), nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Message: c.Message,
	}
}
