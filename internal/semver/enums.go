// Package semver provides immutable semantic versioning types and the
// enums that drive version calculation.
package semver

import (
	"fmt"
	"strings"
)

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "Unknown"
	}
	return names[i]
}

func parseEnum[T ~int](kind string, names []string, s string) (T, error) {
	for i, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q (expected one of %s)", kind, s, strings.Join(names, ", "))
}

// VersionField represents which field of a semantic version to increment.
type VersionField int

const (
	VersionFieldNone VersionField = iota
	VersionFieldPatch
	VersionFieldMinor
	VersionFieldMajor
)

var versionFieldNames = []string{"None", "Patch", "Minor", "Major"}

func (f VersionField) String() string { return enumName(versionFieldNames, int(f)) }

// MaxField returns the larger of two fields.
func MaxField(a, b VersionField) VersionField {
	if a > b {
		return a
	}
	return b
}

// IncrementStrategy represents the configured increment strategy for a branch.
type IncrementStrategy int

const (
	IncrementStrategyNone IncrementStrategy = iota
	IncrementStrategyMajor
	IncrementStrategyMinor
	IncrementStrategyPatch
	IncrementStrategyInherit
)

var incrementStrategyNames = []string{"None", "Major", "Minor", "Patch", "Inherit"}

func (s IncrementStrategy) String() string { return enumName(incrementStrategyNames, int(s)) }

// ParseIncrementStrategy parses a strategy name case-insensitively.
func ParseIncrementStrategy(s string) (IncrementStrategy, error) {
	return parseEnum[IncrementStrategy]("increment strategy", incrementStrategyNames, s)
}

// ToVersionField converts an IncrementStrategy to a VersionField.
// Inherit and None both map to VersionFieldNone.
func (s IncrementStrategy) ToVersionField() VersionField {
	switch s {
	case IncrementStrategyMajor:
		return VersionFieldMajor
	case IncrementStrategyMinor:
		return VersionFieldMinor
	case IncrementStrategyPatch:
		return VersionFieldPatch
	default:
		return VersionFieldNone
	}
}

// DeploymentMode controls how the pre-release counter advances.
type DeploymentMode int

const (
	DeploymentModeManualDeployment DeploymentMode = iota
	DeploymentModeContinuousDelivery
	DeploymentModeContinuousDeployment
)

var deploymentModeNames = []string{"ManualDeployment", "ContinuousDelivery", "ContinuousDeployment"}

func (m DeploymentMode) String() string { return enumName(deploymentModeNames, int(m)) }

// ParseDeploymentMode parses a deployment mode name case-insensitively.
func ParseDeploymentMode(s string) (DeploymentMode, error) {
	return parseEnum[DeploymentMode]("deployment mode", deploymentModeNames, s)
}

// CommitMessageIncrementMode controls how commit messages affect version incrementing.
type CommitMessageIncrementMode int

const (
	CommitMessageIncrementEnabled CommitMessageIncrementMode = iota
	CommitMessageIncrementDisabled
	CommitMessageIncrementMergeMessageOnly
)

var commitMessageIncrementNames = []string{"Enabled", "Disabled", "MergeMessageOnly"}

func (m CommitMessageIncrementMode) String() string {
	return enumName(commitMessageIncrementNames, int(m))
}

// ParseCommitMessageIncrementMode parses a mode name case-insensitively.
func ParseCommitMessageIncrementMode(s string) (CommitMessageIncrementMode, error) {
	return parseEnum[CommitMessageIncrementMode]("commit message increment mode", commitMessageIncrementNames, s)
}

// CommitMessageConvention selects which commit message conventions bump versions.
type CommitMessageConvention int

const (
	CommitMessageConventionConventionalCommits CommitMessageConvention = iota
	CommitMessageConventionBumpDirective
	CommitMessageConventionBoth
)

var commitMessageConventionNames = []string{"ConventionalCommits", "BumpDirective", "Both"}

func (c CommitMessageConvention) String() string {
	return enumName(commitMessageConventionNames, int(c))
}

// ParseCommitMessageConvention parses a convention name case-insensitively.
func ParseCommitMessageConvention(s string) (CommitMessageConvention, error) {
	return parseEnum[CommitMessageConvention]("commit message convention", commitMessageConventionNames, s)
}

// AssemblyVersioningScheme selects the shape of the AssemblySemVer variable.
type AssemblyVersioningScheme int

const (
	AssemblyVersioningSchemeMajorMinorPatch AssemblyVersioningScheme = iota
	AssemblyVersioningSchemeMajorMinorPatchTag
	AssemblyVersioningSchemeMajorMinor
	AssemblyVersioningSchemeMajor
	AssemblyVersioningSchemeNone
)

var assemblyVersioningSchemeNames = []string{"MajorMinorPatch", "MajorMinorPatchTag", "MajorMinor", "Major", "None"}

func (s AssemblyVersioningScheme) String() string {
	return enumName(assemblyVersioningSchemeNames, int(s))
}

// ParseAssemblyVersioningScheme parses a scheme name case-insensitively.
func ParseAssemblyVersioningScheme(s string) (AssemblyVersioningScheme, error) {
	return parseEnum[AssemblyVersioningScheme]("assembly versioning scheme", assemblyVersioningSchemeNames, s)
}

// StrategyKind names a base-version strategy that can be enabled in configuration.
type StrategyKind int

const (
	StrategyFallback StrategyKind = iota
	StrategyConfiguredNextVersion
	StrategyMergeMessage
	StrategyTaggedCommit
	StrategyTrackReleaseBranches
	StrategyVersionInBranchName
	StrategyParentBranchMergePoint
	StrategyMainline
)

var strategyKindNames = []string{
	"Fallback",
	"ConfiguredNextVersion",
	"MergeMessage",
	"TaggedCommit",
	"TrackReleaseBranches",
	"VersionInBranchName",
	"ParentBranchMergePoint",
	"Mainline",
}

func (k StrategyKind) String() string { return enumName(strategyKindNames, int(k)) }

// ParseStrategyKind parses a strategy name case-insensitively.
func ParseStrategyKind(s string) (StrategyKind, error) {
	return parseEnum[StrategyKind]("version strategy", strategyKindNames, s)
}

// DefaultStrategies are enabled when configuration does not list any.
func DefaultStrategies() []StrategyKind {
	return []StrategyKind{
		StrategyFallback,
		StrategyConfiguredNextVersion,
		StrategyMergeMessage,
		StrategyTaggedCommit,
		StrategyTrackReleaseBranches,
		StrategyVersionInBranchName,
		StrategyParentBranchMergePoint,
	}
}
