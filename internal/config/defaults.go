package config

import "github.com/MyCarrier-DevOps/go-gitversion/internal/semver"

// UnknownBranchKey is the catch-all branch configuration key.
const UnknownBranchKey = "unknown"

const (
	defaultTagPrefix            = "[vV]?"
	defaultBaseVersion          = "0.0.0"
	defaultMaxSourceBranchDepth = 8
	defaultMajorBumpMessage     = `\+semver:\s?(breaking|major)`
	defaultMinorBumpMessage     = `\+semver:\s?(feature|minor)`
	defaultPatchBumpMessage     = `\+semver:\s?(fix|patch)`
	defaultNoBumpMessage        = `\+semver:\s?(none|skip)`
)

// CreateDefaultConfiguration returns a Config with every default populated.
// Branches are listed in match priority order with the catch-all last:
// main, release, hotfix, support, develop, feature, pull-request, unknown.
func CreateDefaultConfiguration() *Config {
	return &Config{
		AssemblyVersioningScheme:         Ptr(semver.AssemblyVersioningSchemeMajorMinorPatch),
		Mode:                             Ptr(semver.DeploymentModeContinuousDelivery),
		Label:                            LabelOf("{BranchName}"),
		TagPrefix:                        Ptr(defaultTagPrefix),
		BaseVersion:                      Ptr(defaultBaseVersion),
		Increment:                        Ptr(semver.IncrementStrategyInherit),
		CommitMessageIncrementing:        Ptr(semver.CommitMessageIncrementEnabled),
		CommitMessageConvention:          Ptr(semver.CommitMessageConventionBoth),
		MajorVersionBumpMessage:          Ptr(defaultMajorBumpMessage),
		MinorVersionBumpMessage:          Ptr(defaultMinorBumpMessage),
		PatchVersionBumpMessage:          Ptr(defaultPatchBumpMessage),
		NoBumpMessage:                    Ptr(defaultNoBumpMessage),
		CommitDateFormat:                 Ptr("2006-01-02"),
		TagPreReleaseWeight:              Ptr(int64(60000)),
		LegacySemVerPadding:              Ptr(4),
		BuildMetaDataPadding:             Ptr(4),
		CommitsSinceVersionSourcePadding: Ptr(4),
		Strategies:                       Ptr(semver.DefaultStrategies()),
		MaxSourceBranchDepth:             Ptr(defaultMaxSourceBranchDepth),
		Branches:                         createDefaultBranches(),
	}
}

func createDefaultBranches() BranchConfigs {
	return BranchConfigs{
		{Name: "main", Config: defaultMain()},
		{Name: "release", Config: defaultRelease()},
		{Name: "hotfix", Config: defaultHotfix()},
		{Name: "support", Config: defaultSupport()},
		{Name: "develop", Config: defaultDevelop()},
		{Name: "feature", Config: defaultFeature()},
		{Name: "pull-request", Config: defaultPullRequest()},
		{Name: UnknownBranchKey, Config: defaultUnknown()},
	}
}

func defaultMain() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^master$|^main$`),
		Increment:                             Ptr(semver.IncrementStrategyPatch),
		Label:                                 NoLabel(),
		IsMainline:                            Ptr(true),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(true),
		SourceBranches:                        strSlicePtr([]string{"develop", "release"}),
		PreReleaseWeight:                      Ptr(55000),
	}
}

func defaultRelease() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^releases?[/-]`),
		Increment:                             Ptr(semver.IncrementStrategyNone),
		Mode:                                  Ptr(semver.DeploymentModeManualDeployment),
		Label:                                 LabelOf("beta"),
		IsMainline:                            Ptr(false),
		IsReleaseBranch:                       Ptr(true),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(true),
		SourceBranches:                        strSlicePtr([]string{"develop", "main", "support", "release"}),
		PreReleaseWeight:                      Ptr(30000),
	}
}

func defaultHotfix() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^hotfix(es)?[/-]`),
		Increment:                             Ptr(semver.IncrementStrategyPatch),
		Mode:                                  Ptr(semver.DeploymentModeManualDeployment),
		Label:                                 LabelOf("beta"),
		IsMainline:                            Ptr(false),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(false),
		SourceBranches:                        strSlicePtr([]string{"release", "main", "support", "hotfix"}),
		PreReleaseWeight:                      Ptr(30000),
	}
}

func defaultSupport() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^support[/-]`),
		Increment:                             Ptr(semver.IncrementStrategyPatch),
		Label:                                 NoLabel(),
		IsMainline:                            Ptr(true),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(true),
		SourceBranches:                        strSlicePtr([]string{"main"}),
		PreReleaseWeight:                      Ptr(55000),
	}
}

func defaultDevelop() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^dev(elop)?(ment)?$`),
		Increment:                             Ptr(semver.IncrementStrategyMinor),
		Label:                                 LabelOf("alpha"),
		IsMainline:                            Ptr(false),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(true),
		PreventIncrementOfMergedBranchVersion: Ptr(false),
		SourceBranches:                        strSlicePtr([]string{"main"}),
		PreReleaseWeight:                      Ptr(0),
	}
}

func defaultFeature() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^features?[/-]`),
		Increment:                             Ptr(semver.IncrementStrategyInherit),
		Label:                                 LabelOf("{BranchName}"),
		IsMainline:                            Ptr(false),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(false),
		SourceBranches:                        strSlicePtr([]string{"develop", "main", "release", "support", "hotfix"}),
		PreReleaseWeight:                      Ptr(30000),
	}
}

func defaultPullRequest() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`^(pull|pull-requests|pr)[/-]`),
		Increment:                             Ptr(semver.IncrementStrategyInherit),
		Label:                                 LabelOf("PullRequest{Number}"),
		LabelNumberPattern:                    Ptr(`[/-](?P<number>\d+)`),
		IsMainline:                            Ptr(false),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(false),
		SourceBranches:                        strSlicePtr([]string{"develop", "main", "release", "feature", "support", "hotfix"}),
		PreReleaseWeight:                      Ptr(30000),
	}
}

func defaultUnknown() *BranchConfig {
	return &BranchConfig{
		Regex:                                 Ptr(`.*`),
		Increment:                             Ptr(semver.IncrementStrategyInherit),
		Label:                                 LabelOf("{BranchName}"),
		IsMainline:                            Ptr(false),
		IsReleaseBranch:                       Ptr(false),
		TracksReleaseBranches:                 Ptr(false),
		PreventIncrementOfMergedBranchVersion: Ptr(false),
		SourceBranches:                        strSlicePtr([]string{"main", "develop", "release", "feature", "support", "hotfix"}),
		PreReleaseWeight:                      Ptr(30000),
	}
}
