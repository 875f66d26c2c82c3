package git

import (
	"regexp"
	"strings"
)

var branchVersionRe = regexp.MustCompile(`^\d+(?:\.\d+){0,2}$`)

// VersionFromBranchName returns the first path segment of branchName that
// reads as a version, padded to major.minor.patch. A segment may carry a
// "name-" lead and the tag prefix: "release/1.2", "release-1.3.0" and
// "release/v2" (prefix "[vV]") all match, "JIRA-123-fix" does not.
func VersionFromBranchName(branchName, tagPrefix string) (string, bool) {
	var prefix *regexp.Regexp
	if tagPrefix != "" {
		prefix, _ = regexp.Compile("^(?:" + tagPrefix + ")")
	}

	for segment := range strings.SplitSeq(branchName, "/") {
		tries := []string{segment}
		if _, rest, ok := strings.Cut(segment, "-"); ok {
			tries = append(tries, rest)
		}
		for _, s := range tries {
			if prefix != nil {
				s = prefix.ReplaceAllString(s, "")
			}
			if branchVersionRe.MatchString(s) {
				return padVersion(s), true
			}
		}
	}
	return "", false
}

func padVersion(v string) string {
	for strings.Count(v, ".") < 2 {
		v += ".0"
	}
	return v
}
