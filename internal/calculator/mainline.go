package calculator

import (
	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// mainlineVersion bumps base once per first-parent commit in firstParent,
// oldest first. A merge commit bumps by the highest marker among the
// commits it brings in; a direct commit by its own message. Commits with a
// no-bump marker are skipped.
func mainlineVersion(store *git.RepositoryStore, base semver.SemanticVersion, firstParent []git.Commit, ec config.EffectiveConfiguration, exp *Explanation) semver.SemanticVersion {
	ver := base.Core()
	if base.IsPreRelease() && len(firstParent) > 0 {
		// The pre-release base already names the next release core.
		exp.Addf("pre-release base %s, first commit releases its core", base.SemVer())
		firstParent = firstParent[1:]
	}

	for i := len(firstParent) - 1; i >= 0; i-- {
		c := firstParent[i]
		field, ok := mainlineCommitField(store, c, ec)
		if !ok || field == semver.VersionFieldNone {
			continue
		}
		if ver.Major == 0 && field == semver.VersionFieldMajor && ec.Increment.ToVersionField() != semver.VersionFieldMajor {
			field = semver.VersionFieldMinor
		}
		ver = ver.IncrementField(field)
		exp.Addf("mainline commit %s %q -> %s = %s", c.ShortSha(), c.Subject(), field, ver.SemVer())
	}
	return ver
}

func mainlineCommitField(store *git.RepositoryStore, c git.Commit, ec config.EffectiveConfiguration) (semver.VersionField, bool) {
	if !c.IsMerge() {
		return commitField(c, ec)
	}

	field, ok := commitField(c, ec)
	for _, merged := range store.CommitsBetween(c.Parents[0], c.Parents[1]) {
		if f, mok := commitField(merged, ec); mok {
			field = semver.MaxField(field, f)
			ok = true
		}
	}
	return field, ok
}
