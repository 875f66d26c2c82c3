// Package testutil provides fixtures for tests: go-git repositories with a
// controlled history, and a synthetic commit graph builder.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
)

// TestRepo is a builder for git repositories with controlled commit
// history, tags and branches.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	fs   billy.Filesystem
	time time.Time
}

// NewTestRepo creates a repository held entirely in memory.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	fs := memfs.New()

	repo, err := gogit.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		repo: repo,
		fs:   fs,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewDiskTestRepo creates a repository in a temporary directory, for tests
// that open repositories by path.
func NewDiskTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("getting worktree: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		fs:   wt.Filesystem,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository root directory, or "" for in-memory repositories.
func (r *TestRepo) Path() string {
	return r.path
}

// Repository returns the repository wrapped as a git.Repository backend.
func (r *TestRepo) Repository() *git.GoGitRepository {
	return git.NewGoGitRepository(r.repo)
}

// Snapshot loads the current state of the repository.
func (r *TestRepo) Snapshot() *git.Snapshot {
	r.t.Helper()
	snap, err := git.LoadSnapshot(r.Repository())
	if err != nil {
		r.t.Fatalf("loading snapshot: %v", err)
	}
	return snap
}

func (r *TestRepo) signature() *object.Signature {
	return &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  r.time,
	}
}

// AddCommit creates a new commit with the given message. A file named after
// the commit time is created to ensure each commit has changes.
// Returns the commit SHA.
func (r *TestRepo) AddCommit(message string) string {
	r.t.Helper()
	return r.commit(message, nil)
}

// MergeCommit creates a merge commit with two parents: the current HEAD and
// the given SHA. Returns the merge commit SHA.
func (r *TestRepo) MergeCommit(message, otherSha string) string {
	r.t.Helper()

	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return r.commit(message, []plumbing.Hash{head.Hash(), plumbing.NewHash(otherSha)})
}

func (r *TestRepo) commit(message string, parents []plumbing.Hash) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	filename := fmt.Sprintf("file-%d.txt", r.time.Unix())
	if err := util.WriteFile(r.fs, filename, []byte(message), 0o644); err != nil {
		r.t.Fatalf("writing file: %v", err)
	}
	if _, err := wt.Add(filename); err != nil {
		r.t.Fatalf("staging file: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:  r.signature(),
		Parents: parents,
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}

	return hash.String()
}

// CreateTag creates a lightweight tag pointing at the given SHA.
func (r *TestRepo) CreateTag(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/tags/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// CreateAnnotatedTag creates an annotated tag pointing at the given SHA.
func (r *TestRepo) CreateAnnotatedTag(name, sha, message string) {
	r.t.Helper()
	r.time = r.time.Add(time.Second)

	_, err := r.repo.CreateTag(name, plumbing.NewHash(sha), &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// CreateBranch creates a new branch pointing at the given SHA.
func (r *TestRepo) CreateBranch(name, sha string) {
	r.t.Helper()

	ref := plumbing.NewReferenceFromStrings("refs/heads/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating branch %s: %v", name, err)
	}

	cfg, err := r.repo.Config()
	if err != nil {
		r.t.Fatalf("reading config: %v", err)
	}
	cfg.Branches[name] = &gogitconfig.Branch{
		Name:  name,
		Merge: plumbing.NewBranchReferenceName(name),
	}
	if err := r.repo.SetConfig(cfg); err != nil {
		r.t.Fatalf("saving config: %v", err)
	}
}

// CreateRemoteBranch creates a remote-tracking branch such as origin/main.
func (r *TestRepo) CreateRemoteBranch(remote, name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/remotes/"+remote+"/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating remote branch %s/%s: %v", remote, name, err)
	}
}

// Checkout switches HEAD to the given branch.
func (r *TestRepo) Checkout(branch string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		r.t.Fatalf("checking out %s: %v", branch, err)
	}
}

// CheckoutCommit detaches HEAD at the given SHA.
func (r *TestRepo) CheckoutCommit(sha string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: plumbing.NewHash(sha)}); err != nil {
		r.t.Fatalf("checking out %s: %v", sha, err)
	}
}

// WriteFile writes an untracked file into the worktree.
func (r *TestRepo) WriteFile(name, content string) {
	r.t.Helper()
	if err := util.WriteFile(r.fs, name, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", name, err)
	}
}

// WriteConfig writes a GitVersion.yml file in the repo root.
func (r *TestRepo) WriteConfig(content string) {
	r.t.Helper()
	r.WriteFile("GitVersion.yml", content)
}

// HeadSha returns the current HEAD commit SHA.
func (r *TestRepo) HeadSha() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash().String()
}
