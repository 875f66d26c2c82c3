package git

import "iter"

// Repository is a git backend that a Snapshot is loaded from. Backends
// perform I/O; the calculation engine never calls them directly.
type Repository interface {
	// Head returns the current HEAD branch.
	Head() (Branch, error)

	// Branches returns all local and remote-tracking branches.
	Branches() ([]Branch, error)

	// Tags returns all tags in the repository.
	Tags() ([]Tag, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)

	// CommitLog returns commits reachable from 'to' but not from 'from',
	// newest first. If from is empty, all ancestors of 'to' are returned.
	CommitLog(from, to string) ([]Commit, error)

	// PeelTagToCommit resolves a tag to its target commit SHA.
	PeelTagToCommit(tag Tag) (string, error)

	// NumberOfUncommittedChanges returns the count of dirty worktree entries.
	NumberOfUncommittedChanges() (int, error)
}

// Graph is the read-only commit graph the calculation engine queries.
// Implementations must be safe for concurrent use.
type Graph interface {
	// Head returns the HEAD branch at the time the graph was captured.
	Head() Branch

	// Branches returns every branch in the graph.
	Branches() []Branch

	// Commit looks up a commit by full SHA.
	Commit(sha string) (Commit, bool)

	// Parents returns the ordered parent SHAs of a commit.
	Parents(sha string) []string

	// CommitsReachableFrom yields the commit and its ancestors newest first.
	// A commit is always yielded before any of its ancestors.
	CommitsReachableFrom(sha string) iter.Seq[Commit]

	// TagsAt returns the tag names pointing at a commit, sorted.
	TagsAt(sha string) []string

	// MergeBase returns the best common ancestor of two commits.
	MergeBase(a, b string) (string, bool)

	// IsAncestor reports whether ancestor is reachable from descendant.
	// A commit is its own ancestor.
	IsAncestor(ancestor, descendant string) bool

	// UncommittedChanges returns the dirty worktree entry count.
	UncommittedChanges() int
}
