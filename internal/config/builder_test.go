package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

func TestBuilder_NoOverrides(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Len(t, cfg.Branches, 8)
	require.Equal(t, semver.DeploymentModeContinuousDelivery, *cfg.Mode)
	require.Equal(t,
		[]string{"main", "release", "hotfix", "support", "develop", "feature", "pull-request", "unknown"},
		cfg.Branches.Names(),
	)
}

func TestBuilder_GlobalOverrides(t *testing.T) {
	override := &Config{
		Mode:        Ptr(semver.DeploymentModeManualDeployment),
		TagPrefix:   Ptr("release-"),
		BaseVersion: Ptr("1.0.0"),
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	require.Equal(t, semver.DeploymentModeManualDeployment, *cfg.Mode)
	require.Equal(t, "release-", *cfg.TagPrefix)
	require.Equal(t, "1.0.0", *cfg.BaseVersion)
	require.Equal(t, defaultNoBumpMessage, *cfg.NoBumpMessage)
}

func TestBuilder_BranchOverride_ExistingKey(t *testing.T) {
	override := &Config{
		Branches: BranchConfigs{
			{Name: "main", Config: &BranchConfig{Regex: Ptr(`^master$|^main$|^prod$`)}},
		},
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)

	main, ok := cfg.Branches.Get("main")
	require.True(t, ok)
	require.Equal(t, `^master$|^main$|^prod$`, *main.Regex)
	require.Equal(t, semver.IncrementStrategyPatch, *main.Increment)
	require.True(t, main.Label.IsNone())
	require.True(t, *main.IsMainline)
	require.Len(t, cfg.Branches, 8)
}

func TestBuilder_BranchOverride_NewKeysBeforeCatchAll(t *testing.T) {
	override := &Config{
		Branches: BranchConfigs{
			{Name: "staging", Config: &BranchConfig{Regex: Ptr(`^staging$`), Label: LabelOf("rc")}},
			{Name: "qa", Config: &BranchConfig{Regex: Ptr(`^qa$`)}},
		},
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	names := cfg.Branches.Names()
	require.Len(t, names, 10)
	require.Equal(t, []string{"staging", "qa", "unknown"}, names[7:])
}

func TestBuilder_DoesNotMutateOverride(t *testing.T) {
	staging := &BranchConfig{Regex: Ptr(`^staging$`)}
	override := &Config{
		Branches: BranchConfigs{
			{Name: "staging", Config: staging},
			{Name: "main", Config: &BranchConfig{IsSourceBranchFor: Ptr([]string{"staging"})}},
		},
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	require.Nil(t, staging.SourceBranches)

	built, _ := cfg.Branches.Get("staging")
	require.Equal(t, []string{"main"}, *built.SourceBranches)
}

func TestBuilder_MultipleOverrides(t *testing.T) {
	first := &Config{TagPrefix: Ptr("v"), Label: LabelOf("ci")}
	second := &Config{TagPrefix: Ptr("release-")}

	cfg, err := NewBuilder().Add(first).Add(second).Add(nil).Build()
	require.NoError(t, err)
	require.Equal(t, "release-", *cfg.TagPrefix)
	require.Equal(t, "ci", cfg.Label.Value())
}

func TestBuilder_IsSourceBranchFor(t *testing.T) {
	override := &Config{
		Branches: BranchConfigs{
			{Name: "hotfix", Config: &BranchConfig{IsSourceBranchFor: Ptr([]string{"develop", "missing"})}},
		},
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	develop, _ := cfg.Branches.Get("develop")
	require.Equal(t, []string{"main", "hotfix"}, *develop.SourceBranches)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		override *Config
		key      string
		field    string
	}{
		{"bad tag prefix", &Config{TagPrefix: Ptr("(")}, "", "tag-prefix"},
		{"bad base version", &Config{BaseVersion: Ptr("one")}, "", "base-version"},
		{"bad next version", &Config{NextVersion: Ptr("x.y")}, "", "next-version"},
		{"bad bump message", &Config{MajorVersionBumpMessage: Ptr("[")}, "", "major-version-bump-message"},
		{"negative depth", &Config{MaxSourceBranchDepth: Ptr(-1)}, "", "max-source-branch-depth"},
		{
			"bad branch regex",
			&Config{Branches: BranchConfigs{{Name: "qa", Config: &BranchConfig{Regex: Ptr("[")}}}},
			"qa", "regex",
		},
		{
			"missing branch regex",
			&Config{Branches: BranchConfigs{{Name: "qa", Config: &BranchConfig{}}}},
			"qa", "regex",
		},
		{
			"unknown source branch",
			&Config{Branches: BranchConfigs{{Name: "main", Config: &BranchConfig{SourceBranches: Ptr([]string{"trunk"})}}}},
			"main", "source-branches",
		},
		{
			"bad label number pattern",
			&Config{Branches: BranchConfigs{{Name: "pull-request", Config: &BranchConfig{LabelNumberPattern: Ptr("(")}}}},
			"pull-request", "label-number-pattern",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Add(tt.override).Build()
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tt.key, cfgErr.Key)
			require.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
