// Package config provides YAML configuration loading, the default branch
// configurations, layered merging and the flattening pass that resolves a
// branch name to its effective configuration.
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// Config is the root configuration. Optional fields are pointers so that
// layers can be merged: nil means "not set".
type Config struct {
	AssemblyVersioningScheme         *semver.AssemblyVersioningScheme   `yaml:"assembly-versioning-scheme"`
	Mode                             *semver.DeploymentMode             `yaml:"mode"`
	Label                            *Label                             `yaml:"label"`
	TagPrefix                        *string                            `yaml:"tag-prefix"`
	BaseVersion                      *string                            `yaml:"base-version"`
	NextVersion                      *string                            `yaml:"next-version"`
	Increment                        *semver.IncrementStrategy          `yaml:"increment"`
	CommitMessageIncrementing        *semver.CommitMessageIncrementMode `yaml:"commit-message-incrementing"`
	CommitMessageConvention          *semver.CommitMessageConvention    `yaml:"commit-message-convention"`
	MajorVersionBumpMessage          *string                            `yaml:"major-version-bump-message"`
	MinorVersionBumpMessage          *string                            `yaml:"minor-version-bump-message"`
	PatchVersionBumpMessage          *string                            `yaml:"patch-version-bump-message"`
	NoBumpMessage                    *string                            `yaml:"no-bump-message"`
	CommitDateFormat                 *string                            `yaml:"commit-date-format"`
	TagPreReleaseWeight              *int64                             `yaml:"tag-pre-release-weight"`
	LegacySemVerPadding              *int                               `yaml:"legacy-semver-padding"`
	BuildMetaDataPadding             *int                               `yaml:"build-metadata-padding"`
	CommitsSinceVersionSourcePadding *int                               `yaml:"commits-since-version-source-padding"`
	Strategies                       *[]semver.StrategyKind             `yaml:"strategies"`
	MaxSourceBranchDepth             *int                               `yaml:"max-source-branch-depth"`
	Branches                         BranchConfigs                      `yaml:"branches"`
	Ignore                           IgnoreConfig                       `yaml:"ignore"`
	MergeMessageFormats              map[string]string                  `yaml:"merge-message-formats"`
}

// UnmarshalYAML decodes the document and records an explicit "label: null".
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	if err := value.Decode((*plain)(c)); err != nil {
		return err
	}
	if labelIsExplicitNull(value, "label") {
		c.Label = NoLabel()
	}
	return nil
}
