// Package strategy implements the producers of base-version candidates:
// version tags, release branch names, merge messages, tracked release
// branches, parent branch merge points and the configured fallback.
package strategy

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/context"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// Source identifies where a candidate came from. Lower values take
// priority when candidates tie on distance. A release branch's own version
// outranks the tag it was forked from.
type Source int

const (
	SourceVersionInBranchName Source = iota
	SourceExactTag
	SourceMergeMessage
	SourceTrackedReleaseBranch
	SourceParentBranchMergePoint
	SourceFallback
)

var sourceNames = []string{
	"VersionInBranchName",
	"ExactTag",
	"MergeMessage",
	"TrackedReleaseBranch",
	"ParentBranchMergePoint",
	"Fallback",
}

func (s Source) String() string {
	if s >= 0 && int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Candidate is a possible base version anchored at a commit.
type Candidate struct {
	Source  Source
	Version semver.SemanticVersion

	// Commit is the anchor. Commits after it, up to HEAD, drive the
	// increment and the commit counter.
	Commit git.Commit

	// Increment reports whether the base should be bumped.
	Increment bool

	// InheritedField is the increment resolved by the source branch
	// calculation. Only set for merge-point candidates.
	InheritedField semver.VersionField

	// BranchNameOverride replaces the branch name in {BranchName} labels.
	BranchNameOverride string

	// Description is a one-line summary such as "Git tag 'v1.0.0'".
	Description string

	Explanation *Explanation
}

// String returns a human-readable representation of the candidate.
func (c Candidate) String() string {
	return fmt.Sprintf("%s: %s (source: %s, increment: %t)",
		c.Description, c.Version.SemVer(), c.Commit.ShortSha(), c.Increment)
}

// Explanation records how a strategy derived a Candidate.
type Explanation struct {
	// Strategy is the name of the strategy that produced the candidate.
	Strategy string

	// Steps records the reasoning chain in order.
	Steps []string
}

// NewExplanation creates a new Explanation for the given strategy name.
func NewExplanation(strategy string) *Explanation {
	return &Explanation{Strategy: strategy}
}

// Add appends a reasoning step. Nil-safe.
func (e *Explanation) Add(step string) {
	if e != nil {
		e.Steps = append(e.Steps, step)
	}
}

// Addf appends a formatted reasoning step. Nil-safe.
func (e *Explanation) Addf(format string, args ...any) {
	if e != nil {
		e.Steps = append(e.Steps, fmt.Sprintf(format, args...))
	}
}

// WarningKind classifies a non-fatal calculation problem.
type WarningKind int

const (
	// WarningAmbiguousBaseVersion: several candidates tie at distinct commits.
	WarningAmbiguousBaseVersion WarningKind = iota
	// WarningUnparseableTag: a reachable tag is not a version.
	WarningUnparseableTag
)

func (k WarningKind) String() string {
	switch k {
	case WarningAmbiguousBaseVersion:
		return "AmbiguousBaseVersion"
	case WarningUnparseableTag:
		return "UnparseableTag"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a non-fatal problem found during a calculation.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}

// VersionStrategy produces base-version candidates.
type VersionStrategy interface {
	// Name returns the human-readable name of this strategy.
	Name() string

	// Candidates computes zero or more base-version candidates for the
	// commit and branch held by ctx.
	Candidates(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) ([]Candidate, error)
}

// WarningReporter is implemented by strategies that report non-fatal
// problems alongside their candidates.
type WarningReporter interface {
	Warnings(ctx *context.GitVersionContext, ec config.EffectiveConfiguration) []Warning
}
