package git

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// RepositoryStore provides domain queries built on top of a Graph. It uses
// the config and semver packages to interpret git data in the context of
// semantic versioning.
type RepositoryStore struct {
	graph Graph
}

// NewRepositoryStore creates a new RepositoryStore over the given Graph.
func NewRepositoryStore(graph Graph) *RepositoryStore {
	return &RepositoryStore{graph: graph}
}

// Graph returns the underlying commit graph.
func (s *RepositoryStore) Graph() Graph {
	return s.graph
}

// --- Tag queries ---

// VersionTagsReachableFrom returns every version tag on sha or its
// ancestors. Tag names that do not parse with tagPrefix are returned
// separately, sorted.
func (s *RepositoryStore) VersionTagsReachableFrom(sha, tagPrefix string) ([]VersionTag, []string) {
	var (
		tags        []VersionTag
		unparseable []string
	)
	for c := range s.graph.CommitsReachableFrom(sha) {
		for _, name := range s.graph.TagsAt(c.Sha) {
			ver, ok := semver.TryParse(name, tagPrefix)
			if !ok {
				unparseable = append(unparseable, name)
				continue
			}
			tags = append(tags, VersionTag{Name: name, Version: ver, Commit: c})
		}
	}
	slices.Sort(unparseable)
	return tags, unparseable
}

// ExactVersionTags returns the version tags on sha itself, highest first.
func (s *RepositoryStore) ExactVersionTags(sha, tagPrefix string) []VersionTag {
	c, ok := s.graph.Commit(sha)
	if !ok {
		return nil
	}
	var tags []VersionTag
	for _, name := range s.graph.TagsAt(sha) {
		if ver, ok := semver.TryParse(name, tagPrefix); ok {
			tags = append(tags, VersionTag{Name: name, Version: ver, Commit: c})
		}
	}
	slices.SortStableFunc(tags, func(a, b VersionTag) int {
		return b.Version.CompareTo(a.Version)
	})
	return tags
}

// --- Commit queries ---

// ResolveCommit finds a commit by full SHA or unique SHA prefix.
func (s *RepositoryStore) ResolveCommit(ref string) (Commit, error) {
	if c, ok := s.graph.Commit(ref); ok {
		return c, nil
	}
	if len(ref) < 4 {
		return Commit{}, stateError(ref, ErrRefNotFound)
	}

	var matches []Commit
	seen := make(map[string]struct{})
	tips := []string{s.graph.Head().Tip.Sha}
	for _, b := range s.graph.Branches() {
		tips = append(tips, b.Tip.Sha)
	}
	for _, tip := range tips {
		for c := range s.graph.CommitsReachableFrom(tip) {
			if _, ok := seen[c.Sha]; ok {
				continue
			}
			seen[c.Sha] = struct{}{}
			if strings.HasPrefix(c.Sha, ref) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
		return Commit{}, stateError(ref, ErrRefNotFound)
	case 1:
		return matches[0], nil
	default:
		return Commit{}, stateError(ref, fmt.Errorf("ambiguous commit prefix matches %d commits", len(matches)))
	}
}

// RootCommit follows first parents from sha to the root.
func (s *RepositoryStore) RootCommit(sha string) Commit {
	c, ok := s.graph.Commit(sha)
	if !ok {
		return Commit{}
	}
	for len(c.Parents) > 0 {
		next, ok := s.graph.Commit(c.Parents[0])
		if !ok {
			break
		}
		c = next
	}
	return c
}

// CommitsBetween returns the commits reachable from head but not from base,
// newest first. An empty base returns all ancestors of head.
func (s *RepositoryStore) CommitsBetween(base, head string) []Commit {
	var commits []Commit
	for c := range s.graph.CommitsReachableFrom(head) {
		if base != "" && s.graph.IsAncestor(c.Sha, base) {
			continue
		}
		commits = append(commits, c)
	}
	return commits
}

// FirstParentCommitsBetween walks first parents from head until it reaches
// base or a commit reachable from base. The result is newest first.
func (s *RepositoryStore) FirstParentCommitsBetween(base, head string) []Commit {
	var commits []Commit
	c, ok := s.graph.Commit(head)
	for ok {
		if base != "" && s.graph.IsAncestor(c.Sha, base) {
			break
		}
		commits = append(commits, c)
		if len(c.Parents) == 0 {
			break
		}
		c, ok = s.graph.Commit(c.Parents[0])
	}
	return commits
}

// FindMergeBase returns the merge base commit of a and b.
func (s *RepositoryStore) FindMergeBase(a, b string) (Commit, bool) {
	sha, ok := s.graph.MergeBase(a, b)
	if !ok {
		return Commit{}, false
	}
	return s.graph.Commit(sha)
}

// Distance counts commits reachable from head but not from sha.
func (s *RepositoryStore) Distance(sha, head string) int {
	return len(s.CommitsBetween(sha, head))
}

// --- Branch queries ---

// FindBranch resolves a branch by friendly name. Local branches win over
// remote-tracking ones; "origin/main" and "main" both resolve.
func (s *RepositoryStore) FindBranch(name string) (Branch, bool) {
	var remote *Branch
	for _, b := range s.graph.Branches() {
		if !b.IsRemote && b.Name.Friendly == name {
			return b, true
		}
		if b.IsRemote && remote == nil && (b.Name.Friendly == name || b.Name.WithoutRemote == name) {
			remote = &b
		}
	}
	if remote != nil {
		return *remote, true
	}
	return Branch{}, false
}

// BranchesMatching returns the branches whose name matches ec's regex,
// sorted by name. A remote-tracking branch is only included when no local
// branch of the same name exists. Names in exclude are skipped.
func (s *RepositoryStore) BranchesMatching(ec config.EffectiveConfiguration, exclude ...string) []Branch {
	byName := make(map[string]Branch)
	for _, b := range s.graph.Branches() {
		name := b.FriendlyName()
		if slices.Contains(exclude, name) || !ec.MatchesBranch(name) {
			continue
		}
		if existing, ok := byName[name]; ok && !existing.IsRemote {
			continue
		}
		byName[name] = b
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]Branch, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out
}

// BranchesContaining returns the branches whose tip has sha as an ancestor.
func (s *RepositoryStore) BranchesContaining(sha string) []Branch {
	var out []Branch
	for _, b := range s.graph.Branches() {
		if s.graph.IsAncestor(sha, b.Tip.Sha) {
			out = append(out, b)
		}
	}
	return out
}

// UncommittedChanges returns the dirty worktree entry count.
func (s *RepositoryStore) UncommittedChanges() int {
	return s.graph.UncommittedChanges()
}
