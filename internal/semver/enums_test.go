package semver

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseIncrementStrategy(t *testing.T) {
	for _, s := range []IncrementStrategy{
		IncrementStrategyNone,
		IncrementStrategyMajor,
		IncrementStrategyMinor,
		IncrementStrategyPatch,
		IncrementStrategyInherit,
	} {
		got, err := ParseIncrementStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}

	got, err := ParseIncrementStrategy("minor")
	require.NoError(t, err)
	require.Equal(t, IncrementStrategyMinor, got)

	_, err = ParseIncrementStrategy("sideways")
	require.ErrorContains(t, err, "invalid increment strategy")
}

func TestParseDeploymentMode(t *testing.T) {
	got, err := ParseDeploymentMode("continuousdeployment")
	require.NoError(t, err)
	require.Equal(t, DeploymentModeContinuousDeployment, got)

	_, err = ParseDeploymentMode("Mainline")
	require.Error(t, err)
}

func TestIncrementStrategy_ToVersionField(t *testing.T) {
	require.Equal(t, VersionFieldMajor, IncrementStrategyMajor.ToVersionField())
	require.Equal(t, VersionFieldMinor, IncrementStrategyMinor.ToVersionField())
	require.Equal(t, VersionFieldPatch, IncrementStrategyPatch.ToVersionField())
	require.Equal(t, VersionFieldNone, IncrementStrategyNone.ToVersionField())
	require.Equal(t, VersionFieldNone, IncrementStrategyInherit.ToVersionField())
}

func TestMaxField(t *testing.T) {
	require.Equal(t, VersionFieldMinor, MaxField(VersionFieldPatch, VersionFieldMinor))
	require.Equal(t, VersionFieldMajor, MaxField(VersionFieldMajor, VersionFieldNone))
}

func TestEnumYAML(t *testing.T) {
	var doc struct {
		Mode       DeploymentMode           `yaml:"mode"`
		Increment  IncrementStrategy        `yaml:"increment"`
		Convention CommitMessageConvention  `yaml:"convention"`
		Scheme     AssemblyVersioningScheme `yaml:"scheme"`
		Strategies []StrategyKind           `yaml:"strategies"`
	}
	err := yaml.Unmarshal([]byte(`
mode: ManualDeployment
increment: Major
convention: both
scheme: MajorMinor
strategies: [TaggedCommit, Mainline]
`), &doc)
	require.NoError(t, err)
	require.Equal(t, DeploymentModeManualDeployment, doc.Mode)
	require.Equal(t, IncrementStrategyMajor, doc.Increment)
	require.Equal(t, CommitMessageConventionBoth, doc.Convention)
	require.Equal(t, AssemblyVersioningSchemeMajorMinor, doc.Scheme)
	require.Equal(t, []StrategyKind{StrategyTaggedCommit, StrategyMainline}, doc.Strategies)

	err = yaml.Unmarshal([]byte("mode: Sometimes\n"), &doc)
	require.ErrorContains(t, err, "invalid deployment mode")
}

func TestEnumMarshalText(t *testing.T) {
	out, err := yaml.Marshal(map[string]DeploymentMode{"mode": DeploymentModeContinuousDelivery})
	require.NoError(t, err)
	require.Equal(t, "mode: ContinuousDelivery\n", string(out))
	require.Equal(t, "Unknown", DeploymentMode(42).String())
}
