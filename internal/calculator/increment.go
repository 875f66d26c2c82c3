package calculator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/config"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/git"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitversion/internal/strategy"
)

// Conventional Commits patterns.
var (
	ccTypeRe         = regexp.MustCompile(`^(\w+)(?:\(.+?\))?(!)?:\s`)
	breakingFooterRe = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:\s`)
)

// marker is the version bump requested by one commit message.
type marker struct {
	field  semver.VersionField
	noBump bool
}

// ResolveIncrement determines which version field to bump for candidate,
// given the commits in the range (candidate commit, HEAD].
func ResolveIncrement(candidate strategy.Candidate, commits []git.Commit, ec config.EffectiveConfiguration) semver.VersionField {
	return ResolveIncrementExplained(candidate, commits, ec, nil)
}

// ResolveIncrementExplained works like ResolveIncrement and records its
// reasoning in exp when exp is non-nil.
func ResolveIncrementExplained(candidate strategy.Candidate, commits []git.Commit, ec config.EffectiveConfiguration, exp *Explanation) semver.VersionField {
	if len(commits) == 0 {
		exp.Add("no commits since base version source, increment None")
		return semver.VersionFieldNone
	}
	if !candidate.Increment {
		exp.Addf("%s does not increment, increment None", candidate.Source)
		return semver.VersionFieldNone
	}

	configured := ec.Increment.ToVersionField()
	exp.Addf("scanned %d commits, branch increment %s", len(commits), configured)

	if ec.CommitMessageIncrementing == semver.CommitMessageIncrementDisabled {
		exp.Add("commit message incrementing disabled")
		return configured
	}

	highest := semver.VersionFieldNone
	sawNoBump := false
	for _, c := range commits {
		m := analyzeCommit(c, ec)
		switch {
		case m.field != semver.VersionFieldNone:
			exp.Addf("commit %s %q -> %s (%s)", c.ShortSha(), c.Subject(), m.field, conventionName(c.Message, ec))
			highest = semver.MaxField(highest, m.field)
		case m.noBump:
			exp.Addf("commit %s %q -> none", c.ShortSha(), c.Subject())
			sawNoBump = true
		}
	}

	if highest == semver.VersionFieldNone && sawNoBump {
		exp.Add("no-bump marker without a positive marker, increment None")
		return semver.VersionFieldNone
	}

	// Below 1.0.0 a breaking change bumps Minor unless Major is configured.
	if candidate.Version.Major == 0 && highest == semver.VersionFieldMajor && configured != semver.VersionFieldMajor {
		highest = semver.VersionFieldMinor
		exp.Add("pre-1.0: capping Major -> Minor")
	}

	field := semver.MaxField(configured, highest)
	exp.Addf("increment %s", field)
	return field
}

// commitField returns the positive bump requested by a single commit, with
// the branch increment as the fallback. Used by mainline per-commit bumps.
func commitField(c git.Commit, ec config.EffectiveConfiguration) (semver.VersionField, bool) {
	configured := ec.Increment.ToVersionField()
	if ec.CommitMessageIncrementing == semver.CommitMessageIncrementDisabled {
		return configured, true
	}
	m := analyzeCommit(c, ec)
	if m.field == semver.VersionFieldNone && m.noBump {
		return semver.VersionFieldNone, false
	}
	return semver.MaxField(configured, m.field), true
}

func analyzeCommit(c git.Commit, ec config.EffectiveConfiguration) marker {
	if ec.CommitMessageIncrementing == semver.CommitMessageIncrementMergeMessageOnly && !c.IsMerge() {
		return marker{}
	}

	var m marker
	switch ec.CommitMessageConvention {
	case semver.CommitMessageConventionConventionalCommits:
		m.field = analyzeConventionalCommit(c.Message)
	case semver.CommitMessageConventionBumpDirective:
		m.field = analyzeBumpDirective(c.Message, ec)
	default:
		m.field = semver.MaxField(analyzeConventionalCommit(c.Message), analyzeBumpDirective(c.Message, ec))
	}
	if m.field == semver.VersionFieldNone && ec.CommitMessageConvention != semver.CommitMessageConventionConventionalCommits {
		m.noBump = tryMatch(c.Message, ec.NoBumpMessage)
	}
	return m
}

// analyzeConventionalCommit parses a Conventional Commits message.
// feat: → Minor, fix: → Patch, feat!: or BREAKING CHANGE: footer → Major
func analyzeConventionalCommit(msg string) semver.VersionField {
	firstLine := msg
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		firstLine = msg[:idx]
	}

	matches := ccTypeRe.FindStringSubmatch(firstLine)
	if matches == nil {
		return semver.VersionFieldNone
	}

	if matches[2] == "!" || breakingFooterRe.MatchString(msg) {
		return semver.VersionFieldMajor
	}

	switch strings.ToLower(matches[1]) {
	case "feat":
		return semver.VersionFieldMinor
	case "fix":
		return semver.VersionFieldPatch
	default:
		return semver.VersionFieldNone
	}
}

// analyzeBumpDirective checks for +semver: directives in commit messages.
func analyzeBumpDirective(msg string, ec config.EffectiveConfiguration) semver.VersionField {
	if tryMatch(msg, ec.MajorVersionBumpMessage) {
		return semver.VersionFieldMajor
	}
	if tryMatch(msg, ec.MinorVersionBumpMessage) {
		return semver.VersionFieldMinor
	}
	if tryMatch(msg, ec.PatchVersionBumpMessage) {
		return semver.VersionFieldPatch
	}
	return semver.VersionFieldNone
}

// conventionName returns the name of the convention that matched msg, for
// explain output.
func conventionName(msg string, ec config.EffectiveConfiguration) string {
	switch ec.CommitMessageConvention {
	case semver.CommitMessageConventionConventionalCommits:
		return "Conventional Commits"
	case semver.CommitMessageConventionBumpDirective:
		return "Bump Directive"
	}
	if analyzeBumpDirective(msg, ec) > analyzeConventionalCommit(msg) {
		return "Bump Directive"
	}
	return "Conventional Commits"
}

var patternCache sync.Map // string -> *regexp.Regexp, nil for invalid patterns

// tryMatch reports whether msg matches the regex pattern. Invalid patterns
// never match; Flatten rejects them before a calculation starts.
func tryMatch(msg, pattern string) bool {
	if pattern == "" {
		return false
	}
	cached, ok := patternCache.Load(pattern)
	if !ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			re = nil
		}
		cached, _ = patternCache.LoadOrStore(pattern, re)
	}
	re, _ := cached.(*regexp.Regexp)
	return re != nil && re.MatchString(msg)
}
