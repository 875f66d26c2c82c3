package semver

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BuildMetaData represents the build metadata of a semantic version.
//
// CommitsSinceTag is the count rendered into FullSemVer; nil leaves
// FullSemVer without metadata. CommitsSinceVersionSource is always
// populated and feeds InformationalVersion.
type BuildMetaData struct {
	CommitsSinceTag           *int64
	Branch                    string
	Sha                       string
	ShortSha                  string
	VersionSourceSha          string
	CommitDate                time.Time
	CommitsSinceVersionSource int64
	UncommittedChanges        int64
}

// String returns the short metadata string (commits since tag).
func (m BuildMetaData) String() string {
	if m.CommitsSinceTag == nil {
		return ""
	}
	return strconv.FormatInt(*m.CommitsSinceTag, 10)
}

// FullString returns the metadata including branch and short sha.
// Format: "5.Branch.main.Sha.abc1234"
func (m BuildMetaData) FullString() string {
	if m.Branch == "" && m.Sha == "" && m.CommitsSinceTag == nil {
		return ""
	}
	parts := []string{strconv.FormatInt(m.commitCount(), 10)}
	if m.Branch != "" {
		parts = append(parts, "Branch."+escapeBranchName(m.Branch))
	}
	if sha := m.shortSha(); sha != "" {
		parts = append(parts, "Sha."+sha)
	}
	return strings.Join(parts, ".")
}

func (m BuildMetaData) commitCount() int64 {
	if m.CommitsSinceTag != nil && m.CommitsSinceVersionSource == 0 {
		return *m.CommitsSinceTag
	}
	return m.CommitsSinceVersionSource
}

func (m BuildMetaData) shortSha() string {
	if m.ShortSha != "" {
		return m.ShortSha
	}
	if len(m.Sha) > 7 {
		return m.Sha[:7]
	}
	return m.Sha
}

// Padded returns the commits since tag zero-padded to pad digits.
func (m BuildMetaData) Padded(pad int) string {
	if m.CommitsSinceTag == nil {
		return ""
	}
	return fmt.Sprintf("%0*d", pad, *m.CommitsSinceTag)
}
