package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/calculator"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

// sourceOrder is the display order for candidate sources.
var sourceOrder = []strategy.Source{
	strategy.SourceExactTag,
	strategy.SourceVersionInBranchName,
	strategy.SourceMergeMessage,
	strategy.SourceTrackedReleaseBranch,
	strategy.SourceParentBranchMergePoint,
	strategy.SourceFallback,
}

const arrowPrefix = "→"

// WriteExplanation writes a structured explain report for result to w: the
// candidates of every source, the selected base version, the increment and
// label reasoning, warnings and the final version.
func WriteExplanation(w io.Writer, result calculator.Result) error {
	ew := &errWriter{w: w}

	if result.Base.Commit.IsEmpty() {
		for _, step := range stepsOf(result.Explanation) {
			ew.printf("%s %s\n", arrowPrefix, step)
		}
		ew.printf("\nResult: %s\n", result.Version.FullSemVer())
		return ew.err
	}

	bySource := make(map[strategy.Source][]strategy.Candidate)
	for _, c := range result.Candidates {
		bySource[c.Source] = append(bySource[c.Source], c)
	}

	ew.printf("Candidates:\n")
	for _, source := range sourceOrder {
		candidates := bySource[source]
		if len(candidates) == 0 {
			ew.printf("  %-24s (none)\n", source.String()+":")
			continue
		}
		for i, c := range candidates {
			label := source.String() + ":"
			if i > 0 {
				label = ""
			}
			ew.printf("  %-24s %s (commit: %s, increment: %t)\n",
				label, c.Version.SemVer(), c.Commit.ShortSha(), c.Increment)
			if c.Explanation != nil {
				for _, step := range c.Explanation.Steps {
					ew.printf("    %s %s\n", arrowPrefix, step)
				}
			}
		}
	}

	ew.printf("\nSelected: %s (%s, commit: %s)\n",
		result.Base.Source, result.Base.Version.SemVer(), result.Base.Commit.ShortSha())

	if steps := stepsOf(result.Explanation); len(steps) > 0 {
		ew.printf("\nCalculation:\n")
		for _, step := range steps {
			ew.printf("  %s %s\n", arrowPrefix, step)
		}
	}

	if len(result.Warnings) > 0 {
		ew.printf("\nWarnings:\n")
		for _, warning := range result.Warnings {
			ew.printf("  ! %s\n", warning)
		}
	}

	ew.printf("\nResult: %s\n", result.Version.FullSemVer())
	return ew.err
}

// FormatExplanation returns the explain report as a string.
func FormatExplanation(result calculator.Result) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, result)
	return sb.String()
}

func stepsOf(exp *calculator.Explanation) []string {
	if exp == nil {
		return nil
	}
	return exp.Steps
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
