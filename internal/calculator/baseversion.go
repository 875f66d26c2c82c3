// Package calculator implements the version calculation pipeline: base
// version selection, increment resolution, label synthesis and the
// orchestrating NextVersionCalculator.
package calculator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

// ErrNoBaseVersion is returned when no strategy produced a candidate.
var ErrNoBaseVersion = errors.New("no base version candidates")

// SelectBaseVersion picks the base version among candidates for head.
//
// Candidates anchored at an ancestor of another candidate's commit are
// dominated and removed. The remaining candidates are ordered by distance
// from head, source priority, highest version, then commit sha. When more
// than one candidate ties on distance and source at distinct commits an
// AmbiguousBaseVersion warning is returned.
func SelectBaseVersion(graph git.Graph, head string, candidates []strategy.Candidate) (strategy.Candidate, []Warning, error) {
	if len(candidates) == 0 {
		return strategy.Candidate{}, nil, ErrNoBaseVersion
	}

	live := make([]strategy.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if !isDominated(graph, i, candidates) {
			live = append(live, c)
		}
	}

	store := git.NewRepositoryStore(graph)
	distance := make(map[string]int, len(live))
	for _, c := range live {
		if _, ok := distance[c.Commit.Sha]; !ok {
			distance[c.Commit.Sha] = store.Distance(c.Commit.Sha, head)
		}
	}

	slices.SortStableFunc(live, func(a, b strategy.Candidate) int {
		if d := cmp.Compare(distance[a.Commit.Sha], distance[b.Commit.Sha]); d != 0 {
			return d
		}
		if d := cmp.Compare(a.Source, b.Source); d != 0 {
			return d
		}
		if d := b.Version.CompareTo(a.Version); d != 0 {
			return d
		}
		return strings.Compare(a.Commit.Sha, b.Commit.Sha)
	})

	best := live[0]
	var warnings []Warning
	var tied []string
	for _, c := range live[1:] {
		if distance[c.Commit.Sha] != distance[best.Commit.Sha] || c.Source != best.Source {
			break
		}
		if c.Commit.Sha != best.Commit.Sha && !slices.Contains(tied, c.Commit.ShortSha()) {
			tied = append(tied, c.Commit.ShortSha())
		}
	}
	if len(tied) > 0 {
		warnings = append(warnings, Warning{
			Kind: AmbiguousBaseVersion,
			Message: fmt.Sprintf("%s candidates at %s and %s are equally close; selected %s",
				best.Source, best.Commit.ShortSha(), strings.Join(tied, ", "), best.Version.SemVer()),
		})
	}

	return best, warnings, nil
}

// isDominated reports whether candidates[i] is anchored at a strict
// ancestor of another candidate's commit.
func isDominated(graph git.Graph, i int, candidates []strategy.Candidate) bool {
	sha := candidates[i].Commit.Sha
	for j, other := range candidates {
		if j == i || other.Commit.Sha == sha {
			continue
		}
		if graph.IsAncestor(sha, other.Commit.Sha) {
			return true
		}
	}
	return false
}

// FilterIgnored removes candidates anchored at commits excluded by the
// ignore configuration. Fallback candidates are always kept.
func FilterIgnored(candidates []strategy.Candidate, ec config.EffectiveConfiguration) []strategy.Candidate {
	if ec.Ignore.IsEmpty() {
		return candidates
	}

	var filtered []strategy.Candidate
	for _, c := range candidates {
		if c.Source != strategy.SourceFallback && ec.Ignore.Excludes(c.Commit.Sha, c.Commit.When) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
