package testutil

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
)

// Graph builds a synthetic commit graph without a repository. It tracks a
// current branch like a worktree: Commit appends to it, Branch forks from
// it and Merge joins another branch into it.
type Graph struct {
	t        testing.TB
	commits  []git.Commit
	bySha    map[string]int
	branches map[string]string
	order    []string
	remotes  map[string]string
	tags     []git.Tag
	current  string
	detached string
	clock    time.Time
}

// NewGraph returns an empty graph with "main" checked out.
func NewGraph(t testing.TB) *Graph {
	return &Graph{
		t:        t,
		bySha:    make(map[string]int),
		branches: make(map[string]string),
		remotes:  make(map[string]string),
		current:  "main",
		clock:    time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (g *Graph) newCommit(message string, parents ...string) string {
	g.clock = g.clock.Add(time.Minute)
	sum := sha1.Sum([]byte(fmt.Sprintf("%d\x00%s", len(g.commits), message)))
	sha := hex.EncodeToString(sum[:])

	var ps []string
	for _, p := range parents {
		if p != "" {
			ps = append(ps, p)
		}
	}
	g.bySha[sha] = len(g.commits)
	g.commits = append(g.commits, git.Commit{
		Sha:     sha,
		Parents: ps,
		When:    g.clock,
		Message: message,
	})
	return sha
}

func (g *Graph) setBranch(name, sha string) {
	if _, ok := g.branches[name]; !ok {
		g.order = append(g.order, name)
	}
	g.branches[name] = sha
}

// Tip returns the tip of the current branch, or the detached HEAD.
func (g *Graph) Tip() string {
	if g.detached != "" {
		return g.detached
	}
	return g.branches[g.current]
}

// Commit appends a commit to the current branch and returns its SHA.
func (g *Graph) Commit(message string) string {
	sha := g.newCommit(message, g.Tip())
	if g.detached != "" {
		g.detached = sha
	} else {
		g.setBranch(g.current, sha)
	}
	return sha
}

// Commits appends n commits with generated messages.
func (g *Graph) Commits(n int) string {
	var sha string
	for i := 0; i < n; i++ {
		sha = g.Commit(fmt.Sprintf("commit %d", len(g.commits)+1))
	}
	return sha
}

// Branch creates name at the current tip and checks it out.
func (g *Graph) Branch(name string) *Graph {
	g.setBranch(name, g.Tip())
	g.current = name
	g.detached = ""
	return g
}

// Checkout switches to an existing branch.
func (g *Graph) Checkout(name string) *Graph {
	if _, ok := g.branches[name]; !ok {
		g.t.Fatalf("checkout: unknown branch %q", name)
	}
	g.current = name
	g.detached = ""
	return g
}

// CheckoutCommit detaches HEAD at sha.
func (g *Graph) CheckoutCommit(sha string) *Graph {
	g.detached = sha
	return g
}

// Merge creates a merge commit of branch into the current branch. An empty
// message produces the default git merge message.
func (g *Graph) Merge(branch, message string) string {
	other, ok := g.branches[branch]
	if !ok {
		g.t.Fatalf("merge: unknown branch %q", branch)
	}
	if message == "" {
		message = fmt.Sprintf("Merge branch '%s' into %s", branch, g.current)
	}
	sha := g.newCommit(message, g.Tip(), other)
	g.setBranch(g.current, sha)
	return sha
}

// Tag tags the current tip.
func (g *Graph) Tag(name string) *Graph {
	return g.TagAt(name, g.Tip())
}

// TagAt tags sha.
func (g *Graph) TagAt(name, sha string) *Graph {
	g.tags = append(g.tags, git.Tag{Name: git.NewTagReferenceName(name), TargetSha: sha})
	return g
}

// Remote adds a remote-tracking branch origin/<name> at sha.
func (g *Graph) Remote(name, sha string) *Graph {
	g.remotes[name] = sha
	return g
}

// Snapshot materializes the graph.
func (g *Graph) Snapshot() *git.Snapshot {
	g.t.Helper()

	var branches []git.Branch
	for _, name := range g.order {
		idx, ok := g.bySha[g.branches[name]]
		if !ok {
			continue
		}
		tip := g.commits[idx]
		branches = append(branches, git.Branch{Name: git.NewBranchReferenceName(name), Tip: &tip})
	}
	remotes := make([]string, 0, len(g.remotes))
	for name := range g.remotes {
		remotes = append(remotes, name)
	}
	slices.Sort(remotes)
	for _, name := range remotes {
		tip := g.commits[g.bySha[g.remotes[name]]]
		branches = append(branches, git.Branch{
			Name:     git.NewReferenceName("refs/remotes/origin/" + name),
			Tip:      &tip,
			IsRemote: true,
		})
	}

	tipSha := g.Tip()
	idx, ok := g.bySha[tipSha]
	if !ok {
		g.t.Fatalf("snapshot: HEAD has no commits")
	}
	tip := g.commits[idx]
	head := git.Branch{Name: git.NewBranchReferenceName(g.current), Tip: &tip}
	if g.detached != "" {
		head = git.Branch{Name: git.NewReferenceName("HEAD"), Tip: &tip, IsDetachedHead: true}
	}

	snap, err := git.NewSnapshot(head, branches, g.commits, g.tags)
	if err != nil {
		g.t.Fatalf("snapshot: %v", err)
	}
	return snap
}

// Store returns a RepositoryStore over a fresh snapshot.
func (g *Graph) Store() *git.RepositoryStore {
	return git.NewRepositoryStore(g.Snapshot())
}
