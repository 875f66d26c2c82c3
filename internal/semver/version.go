package semver

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(
	`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.(\d+))?(?:-([^+]*))?(?:\+(.*))?$`,
)

// SemanticVersion represents a semantic version.
// The type is immutable; every method returns a new value.
type SemanticVersion struct {
	Major         int64
	Minor         int64
	Patch         int64
	PreReleaseTag PreReleaseTag
	BuildMetaData BuildMetaData
}

// TryParse attempts to parse a version string with an optional tag prefix regex.
func TryParse(s, tagPrefix string) (SemanticVersion, bool) {
	v, err := Parse(s, tagPrefix)
	if err != nil {
		return SemanticVersion{}, false
	}
	return v, true
}

// Parse parses a version string with an optional tag prefix regex.
// When tagPrefix is non-empty the string must start with a match for it.
func Parse(s, tagPrefix string) (SemanticVersion, error) {
	remaining := s

	if tagPrefix != "" {
		prefixRegex, err := regexp.Compile("^(?:" + tagPrefix + ")")
		if err != nil {
			return SemanticVersion{}, errors.New("invalid tag prefix regex: " + err.Error())
		}
		loc := prefixRegex.FindStringIndex(remaining)
		if loc == nil {
			return SemanticVersion{}, errors.New("version string does not match tag prefix: " + s)
		}
		remaining = remaining[loc[1]:]
	}

	matches := versionRegex.FindStringSubmatch(remaining)
	if matches == nil {
		return SemanticVersion{}, errors.New("invalid version format: " + s)
	}

	var v SemanticVersion
	fields := []*int64{&v.Major, &v.Minor, &v.Patch}
	for i, field := range fields {
		if matches[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(matches[i+1], 10, 64)
		if err != nil {
			return SemanticVersion{}, errors.New("invalid version component: " + matches[i+1])
		}
		*field = n
	}

	// matches[4] is a fourth numeric part, accepted and ignored.

	if matches[5] != "" {
		v.PreReleaseTag = parsePreReleaseTag(matches[5])
	}

	if matches[6] != "" {
		if n, ok := parseCounter(matches[6]); ok {
			v.BuildMetaData = BuildMetaData{CommitsSinceTag: &n}
		}
	}

	return v, nil
}

// parsePreReleaseTag handles "beta.4", "beta", "4" and "alpha.1". Only an
// unsigned decimal counts as the number; "beta.-1" is all name.
func parsePreReleaseTag(s string) PreReleaseTag {
	if s == "" {
		return PreReleaseTag{}
	}

	if lastDot := strings.LastIndex(s, "."); lastDot >= 0 {
		if num, ok := parseCounter(s[lastDot+1:]); ok {
			return PreReleaseTag{Name: s[:lastDot], Number: &num}
		}
	}

	if num, ok := parseCounter(s); ok {
		return PreReleaseTag{Number: &num}
	}

	return PreReleaseTag{Name: s}
}

func parseCounter(s string) (int64, bool) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

// CompareTo compares two versions by SemVer 2.0 precedence.
// Build metadata is ignored.
func (v SemanticVersion) CompareTo(other SemanticVersion) int {
	switch {
	case v.Major != other.Major:
		return compareInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return compareInt(v.Minor, other.Minor)
	case v.Patch != other.Patch:
		return compareInt(v.Patch, other.Patch)
	}
	return v.PreReleaseTag.CompareTo(other.PreReleaseTag)
}

func compareInt(a, b int64) int {
	if a > b {
		return 1
	}
	if a < b {
		return -1
	}
	return 0
}

// IncrementField bumps the specified version field.
// Lower fields are zeroed and the pre-release tag and build metadata are cleared.
// VersionFieldNone returns the version unchanged.
func (v SemanticVersion) IncrementField(field VersionField) SemanticVersion {
	switch field {
	case VersionFieldMajor:
		return SemanticVersion{Major: v.Major + 1}
	case VersionFieldMinor:
		return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}
	case VersionFieldPatch:
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// Core returns only the major, minor and patch components.
func (v SemanticVersion) Core() SemanticVersion {
	return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// IsPreRelease reports whether the version carries a pre-release tag.
func (v SemanticVersion) IsPreRelease() bool {
	return v.PreReleaseTag.HasTag()
}

// WithPreReleaseTag returns a copy with the given pre-release tag.
func (v SemanticVersion) WithPreReleaseTag(tag PreReleaseTag) SemanticVersion {
	v.PreReleaseTag = tag
	return v
}

// WithBuildMetaData returns a copy with the given build metadata.
func (v SemanticVersion) WithBuildMetaData(meta BuildMetaData) SemanticVersion {
	v.BuildMetaData = meta
	return v
}

// MajorMinorPatch returns "MAJOR.MINOR.PATCH".
func (v SemanticVersion) MajorMinorPatch() string {
	return strconv.FormatInt(v.Major, 10) + "." +
		strconv.FormatInt(v.Minor, 10) + "." +
		strconv.FormatInt(v.Patch, 10)
}

// SemVer returns the SemVer 2.0 format (e.g., "1.2.3" or "1.2.3-beta.4").
func (v SemanticVersion) SemVer() string {
	if tag := v.PreReleaseTag.String(); tag != "" {
		return v.MajorMinorPatch() + "-" + tag
	}
	return v.MajorMinorPatch()
}

// FullSemVer returns the SemVer with build metadata (e.g., "1.2.3-beta.4+5").
func (v SemanticVersion) FullSemVer() string {
	s := v.SemVer()
	if meta := v.BuildMetaData.String(); meta != "" {
		return s + "+" + meta
	}
	return s
}

// LegacySemVer returns the pre-release without a dot separator (e.g., "1.2.3-beta4").
func (v SemanticVersion) LegacySemVer() string {
	if tag := v.PreReleaseTag.Legacy(); tag != "" {
		return v.MajorMinorPatch() + "-" + tag
	}
	return v.MajorMinorPatch()
}

// LegacySemVerPadded returns the padded legacy format (e.g., "1.2.3-beta0004").
func (v SemanticVersion) LegacySemVerPadded(pad int) string {
	if tag := v.PreReleaseTag.LegacyPadded(pad); tag != "" {
		return v.MajorMinorPatch() + "-" + tag
	}
	return v.MajorMinorPatch()
}

// InformationalVersion returns the full informational string
// (e.g., "1.2.3-beta.4+5.Branch.main.Sha.abc1234").
func (v SemanticVersion) InformationalVersion() string {
	s := v.SemVer()
	if meta := v.BuildMetaData.FullString(); meta != "" {
		return s + "+" + meta
	}
	return s
}

func (v SemanticVersion) String() string {
	return v.FullSemVer()
}
