package strategy

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// Enabled returns the candidate producers for the strategy kinds in
// priority order. ConfiguredNextVersion and Mainline are applied by the
// calculator and have no producer. A nil inherit disables the merge-point
// strategy.
func Enabled(kinds []semver.StrategyKind, inherit InheritFunc) []VersionStrategy {
	has := make(map[semver.StrategyKind]bool, len(kinds))
	for _, k := range kinds {
		has[k] = true
	}

	var out []VersionStrategy
	if has[semver.StrategyTaggedCommit] {
		out = append(out, NewTaggedCommitStrategy())
	}
	if has[semver.StrategyVersionInBranchName] {
		out = append(out, NewVersionInBranchNameStrategy())
	}
	if has[semver.StrategyMergeMessage] {
		out = append(out, NewMergeMessageStrategy())
	}
	if has[semver.StrategyTrackReleaseBranches] {
		out = append(out, NewTrackReleaseBranchesStrategy())
	}
	if has[semver.StrategyParentBranchMergePoint] && inherit != nil {
		out = append(out, NewParentBranchMergePointStrategy(inherit))
	}
	if has[semver.StrategyFallback] {
		out = append(out, NewFallbackStrategy())
	}
	return out
}
