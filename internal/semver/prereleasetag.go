package semver

import (
	"fmt"
	"strconv"

	mmsemver "github.com/Masterminds/semver/v3"
)

// PreReleaseTag represents the pre-release portion of a semantic version.
type PreReleaseTag struct {
	Name   string
	Number *int64
}

// HasTag returns true when the pre-release tag has a name or number.
func (t PreReleaseTag) HasTag() bool {
	return t.Name != "" || t.Number != nil
}

// WithName returns a copy with the given name.
func (t PreReleaseTag) WithName(name string) PreReleaseTag {
	return PreReleaseTag{Name: name, Number: t.Number}
}

// WithNumber returns a copy with the given number.
func (t PreReleaseTag) WithNumber(n int64) PreReleaseTag {
	return PreReleaseTag{Name: t.Name, Number: &n}
}

// CompareTo orders tags by SemVer 2.0 pre-release precedence.
// A stable version (no tag) is greater than any pre-release. Numeric
// identifiers compare numerically and alphanumeric ones in ASCII order.
func (t PreReleaseTag) CompareTo(other PreReleaseTag) int {
	if !t.HasTag() && !other.HasTag() {
		return 0
	}
	if !t.HasTag() {
		return 1
	}
	if !other.HasTag() {
		return -1
	}
	a := mmsemver.New(0, 0, 0, t.String(), "")
	b := mmsemver.New(0, 0, 0, other.String(), "")
	return a.Compare(b)
}

// String returns the dotted pre-release string (e.g., "beta.4").
func (t PreReleaseTag) String() string {
	switch {
	case !t.HasTag():
		return ""
	case t.Number == nil:
		return t.Name
	case t.Name == "":
		return strconv.FormatInt(*t.Number, 10)
	}
	return t.Name + "." + strconv.FormatInt(*t.Number, 10)
}

// Legacy returns the pre-release string without a dot separator (e.g., "beta4").
func (t PreReleaseTag) Legacy() string {
	switch {
	case !t.HasTag():
		return ""
	case t.Number == nil:
		return t.Name
	}
	return t.Name + strconv.FormatInt(*t.Number, 10)
}

// LegacyPadded returns the legacy format with a zero-padded number (e.g., "beta0004").
func (t PreReleaseTag) LegacyPadded(pad int) string {
	switch {
	case !t.HasTag():
		return ""
	case t.Number == nil:
		return t.Name
	}
	return t.Name + fmt.Sprintf("%0*d", pad, *t.Number)
}
