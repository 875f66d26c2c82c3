package git

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultAncestorCacheSize = 512

// Compile-time check that Snapshot implements Graph.
var _ Graph = (*Snapshot)(nil)

// Snapshot is an immutable in-memory commit graph. It is safe for
// concurrent use once constructed.
type Snapshot struct {
	head        Branch
	branches    []Branch
	commits     map[string]Commit
	tags        map[string][]string
	uncommitted int

	ancestors *lru.Cache[string, map[string]struct{}]
}

// SnapshotOption configures a Snapshot.
type SnapshotOption func(*Snapshot)

// WithUncommittedChanges records the dirty worktree entry count.
func WithUncommittedChanges(n int) SnapshotOption {
	return func(s *Snapshot) {
		s.uncommitted = n
	}
}

// NewSnapshot builds a Snapshot from commits and peeled tags. Tags must
// already point at commits. Parents outside the commit set are dropped, so a
// shallow history behaves like a graph rooted at its oldest commits.
func NewSnapshot(head Branch, branches []Branch, commits []Commit, tags []Tag, opts ...SnapshotOption) (*Snapshot, error) {
	s := &Snapshot{
		commits: make(map[string]Commit, len(commits)),
		tags:    make(map[string][]string),
	}

	for _, c := range commits {
		c.Parents = slices.Clone(c.Parents)
		s.commits[c.Sha] = c
	}
	for sha, c := range s.commits {
		parents := c.Parents[:0]
		for _, p := range c.Parents {
			if _, ok := s.commits[p]; ok {
				parents = append(parents, p)
			}
		}
		c.Parents = parents
		s.commits[sha] = c
	}

	if head.Tip == nil {
		return nil, stateError("HEAD", ErrNoHead)
	}
	tip, ok := s.commits[head.Tip.Sha]
	if !ok {
		return nil, stateError("HEAD", fmt.Errorf("commit %s: %w", head.Tip.Sha, ErrRefNotFound))
	}
	s.head = withTip(head, tip)

	for _, b := range branches {
		if b.Tip == nil {
			continue
		}
		c, ok := s.commits[b.Tip.Sha]
		if !ok {
			continue
		}
		s.branches = append(s.branches, withTip(b, c))
	}

	for _, t := range tags {
		if _, ok := s.commits[t.TargetSha]; !ok {
			continue
		}
		s.tags[t.TargetSha] = append(s.tags[t.TargetSha], t.Name.Friendly)
	}
	for sha := range s.tags {
		slices.Sort(s.tags[sha])
		s.tags[sha] = slices.Compact(s.tags[sha])
	}

	cache, err := lru.New[string, map[string]struct{}](defaultAncestorCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating ancestor cache: %w", err)
	}
	s.ancestors = cache

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func withTip(b Branch, c Commit) Branch {
	b.Tip = &c
	return b
}

// Head returns the HEAD branch.
func (s *Snapshot) Head() Branch {
	return s.head
}

// Branches returns a copy of the branch list.
func (s *Snapshot) Branches() []Branch {
	return slices.Clone(s.branches)
}

// Commit looks up a commit by full SHA.
func (s *Snapshot) Commit(sha string) (Commit, bool) {
	c, ok := s.commits[sha]
	return c, ok
}

// Parents returns the ordered parents of a commit.
func (s *Snapshot) Parents(sha string) []string {
	return slices.Clone(s.commits[sha].Parents)
}

// TagsAt returns the sorted tag names at a commit.
func (s *Snapshot) TagsAt(sha string) []string {
	return slices.Clone(s.tags[sha])
}

// UncommittedChanges returns the dirty worktree entry count.
func (s *Snapshot) UncommittedChanges() int {
	return s.uncommitted
}

// IsAncestor reports whether ancestor is reachable from descendant.
func (s *Snapshot) IsAncestor(ancestor, descendant string) bool {
	_, ok := s.ancestorSet(descendant)[ancestor]
	return ok
}

// MergeBase returns the first common ancestor in b's topological walk.
// No descendant of the returned commit is also common to both.
func (s *Snapshot) MergeBase(a, b string) (string, bool) {
	if _, ok := s.commits[a]; !ok {
		return "", false
	}
	ancA := s.ancestorSet(a)
	for c := range s.CommitsReachableFrom(b) {
		if _, ok := ancA[c.Sha]; ok {
			return c.Sha, true
		}
	}
	return "", false
}

// CommitsReachableFrom yields sha and all its ancestors. Order is
// topological, with ties broken by commit time (newest first) and then sha.
func (s *Snapshot) CommitsReachableFrom(sha string) iter.Seq[Commit] {
	return func(yield func(Commit) bool) {
		reachable := s.ancestorSet(sha)
		if len(reachable) == 0 {
			return
		}

		pending := make(map[string]int, len(reachable))
		for c := range reachable {
			for _, p := range s.commits[c].Parents {
				pending[p]++
			}
		}

		heap := binaryheap.NewWith(newestFirst)
		heap.Push(s.commits[sha])
		for !heap.Empty() {
			v, _ := heap.Pop()
			c := v.(Commit)
			if !yield(c) {
				return
			}
			for _, p := range c.Parents {
				pending[p]--
				if pending[p] == 0 {
					heap.Push(s.commits[p])
				}
			}
		}
	}
}

func newestFirst(a, b interface{}) int {
	ca, cb := a.(Commit), b.(Commit)
	switch {
	case ca.When.After(cb.When):
		return -1
	case ca.When.Before(cb.When):
		return 1
	}
	return strings.Compare(ca.Sha, cb.Sha)
}

// ancestorSet returns sha and every commit reachable from it.
func (s *Snapshot) ancestorSet(sha string) map[string]struct{} {
	if set, ok := s.ancestors.Get(sha); ok {
		return set
	}
	if _, ok := s.commits[sha]; !ok {
		return nil
	}

	set := map[string]struct{}{sha: {}}
	stack := []string{sha}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range s.commits[cur].Parents {
			if _, seen := set[p]; seen {
				continue
			}
			set[p] = struct{}{}
			stack = append(stack, p)
		}
	}
	s.ancestors.Add(sha, set)
	return set
}

// LoadSnapshot reads HEAD, every branch history and all tags from repo.
// Tags that cannot be peeled to a commit are skipped.
func LoadSnapshot(repo Repository) (*Snapshot, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, stateError("HEAD", err)
	}
	if head.Tip == nil {
		return nil, stateError("HEAD", ErrNoHead)
	}

	branches, err := repo.Branches()
	if err != nil {
		return nil, stateError("branches", err)
	}

	seen := make(map[string]struct{})
	var commits []Commit
	tips := []string{head.Tip.Sha}
	for _, b := range branches {
		if b.Tip != nil {
			tips = append(tips, b.Tip.Sha)
		}
	}
	for _, tip := range tips {
		if _, ok := seen[tip]; ok {
			continue
		}
		log, err := repo.CommitLog("", tip)
		if err != nil {
			return nil, stateError(tip, err)
		}
		for _, c := range log {
			if _, ok := seen[c.Sha]; ok {
				continue
			}
			seen[c.Sha] = struct{}{}
			commits = append(commits, c)
		}
	}

	rawTags, err := repo.Tags()
	if err != nil {
		return nil, stateError("tags", err)
	}
	tags := make([]Tag, 0, len(rawTags))
	for _, t := range rawTags {
		sha, err := repo.PeelTagToCommit(t)
		if err != nil {
			continue
		}
		tags = append(tags, Tag{Name: t.Name, TargetSha: sha})
	}

	uncommitted, err := repo.NumberOfUncommittedChanges()
	if err != nil {
		uncommitted = 0
	}

	return NewSnapshot(head, branches, commits, tags, WithUncommittedChanges(uncommitted))
}
