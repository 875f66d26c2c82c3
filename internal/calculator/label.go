package calculator

import (
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// SynthesizeLabel attaches the pre-release tag and commit counters to core
// according to the deployment mode of ec.
//
//   - ManualDeployment numbers the label after the highest existing tag with
//     the same core and label; FullSemVer carries the commit count.
//   - ContinuousDelivery numbers the label with the commit count.
//   - ContinuousDeployment numbers the label with the commit count and
//     FullSemVer carries it too.
//
// When base is a pre-release of the same core and label, the continuous
// modes count on from its number so the result never sorts below base.
// Without a label only ContinuousDeployment adds build metadata.
// existingTags are the versions of tags reachable from HEAD.
func SynthesizeLabel(core, base semver.SemanticVersion, ec config.EffectiveConfiguration, branchName string, commitsSinceBase int64, existingTags []semver.SemanticVersion) semver.SemanticVersion {
	ver := core.Core()
	meta := semver.BuildMetaData{
		Branch:                    branchName,
		CommitsSinceVersionSource: commitsSinceBase,
	}
	commits := commitsSinceBase

	label, ok := ec.LabelFor(branchName)
	if !ok {
		if ec.Mode == semver.DeploymentModeContinuousDeployment {
			meta.CommitsSinceTag = &commits
		}
		return ver.WithBuildMetaData(meta)
	}

	tag := semver.PreReleaseTag{Name: label}
	switch ec.Mode {
	case semver.DeploymentModeManualDeployment:
		if commitsSinceBase > 0 {
			tag = tag.WithNumber(nextLabelNumber(ver, label, existingTags))
		}
		meta.CommitsSinceTag = &commits
	case semver.DeploymentModeContinuousDeployment:
		tag = tag.WithNumber(continuedNumber(ver, base, label, commitsSinceBase))
		meta.CommitsSinceTag = &commits
	default:
		tag = tag.WithNumber(continuedNumber(ver, base, label, commitsSinceBase))
	}

	return ver.WithPreReleaseTag(tag).WithBuildMetaData(meta)
}

// nextLabelNumber returns one more than the highest pre-release number of
// the tags sharing core and label, or 1 when there are none.
func nextLabelNumber(core semver.SemanticVersion, label string, existingTags []semver.SemanticVersion) int64 {
	var highest int64
	for _, v := range existingTags {
		if v.Core().CompareTo(core) != 0 || v.PreReleaseTag.Name != label || v.PreReleaseTag.Number == nil {
			continue
		}
		highest = max(highest, *v.PreReleaseTag.Number)
	}
	return highest + 1
}

// continuedNumber is the commit count, offset by base's pre-release number
// when base carries the same core and label.
func continuedNumber(core, base semver.SemanticVersion, label string, commits int64) int64 {
	if base.Core().CompareTo(core) != 0 || base.PreReleaseTag.Name != label || base.PreReleaseTag.Number == nil {
		return commits
	}
	return *base.PreReleaseTag.Number + commits
}
