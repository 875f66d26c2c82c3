package git

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// MergeMessage is what a merge or squash commit message says was merged.
type MergeMessage struct {
	// Format names the pattern that matched.
	Format string
	// Source is the merged branch or tag as written in the message.
	Source string
	// Target is the branch merged into, when the message names one.
	Target string
	// PullRequest is the pull request number, or zero.
	PullRequest int
}

// IsEmpty reports whether no format matched.
func (m MergeMessage) IsEmpty() bool { return m.Format == "" }

// IsPullRequest reports whether the message names a pull request.
func (m MergeMessage) IsPullRequest() bool { return m.PullRequest > 0 }

// SourceBranch returns Source without a refs/ or origin/upstream prefix.
func (m MergeMessage) SourceBranch() string {
	if strings.HasPrefix(m.Source, "refs/") {
		return NewReferenceName(m.Source).WithoutRemote
	}
	remote, rest, ok := strings.Cut(m.Source, "/")
	if ok && (remote == "origin" || remote == "upstream") {
		return rest
	}
	return m.Source
}

// Capture group names recognized in merge message patterns.
const (
	groupSource      = "SourceBranch"
	groupTarget      = "TargetBranch"
	groupPullRequest = "PullRequestNumber"
)

type mergeFormat struct {
	name string
	re   *regexp.Regexp
}

func (f mergeFormat) match(message string) (MergeMessage, bool) {
	groups := f.re.FindStringSubmatch(message)
	if groups == nil {
		return MergeMessage{}, false
	}
	mm := MergeMessage{Format: f.name}
	for i, group := range f.re.SubexpNames() {
		if i == 0 || groups[i] == "" {
			continue
		}
		switch group {
		case groupSource:
			mm.Source = groups[i]
		case groupTarget:
			// GitLab quotes the target branch.
			mm.Target = strings.Trim(groups[i], "'")
		case groupPullRequest:
			if n, err := strconv.Atoi(groups[i]); err == nil {
				mm.PullRequest = n
			}
		}
	}
	return mm, true
}

func builtin(name, pattern string) mergeFormat {
	return mergeFormat{name: name, re: regexp.MustCompile(pattern)}
}

var builtinMergeFormats = []mergeFormat{
	builtin("Default", `(?i)^Merge (?:branch|tag) '(?P<SourceBranch>[^']*)'(?: into (?P<TargetBranch>\S*))*`),
	builtin("SmartGit", `(?i)^Finish (?P<SourceBranch>\S*)(?: into (?P<TargetBranch>\S*))*`),
	builtin("BitBucketPull", `(?i)^Merge pull request #(?P<PullRequestNumber>\d+) (?:from|in) .* from (?P<SourceBranch>\S*) to (?P<TargetBranch>\S*)`),
	builtin("BitBucketPullv7", `(?is)^Pull request #(?P<PullRequestNumber>\d+).*\n\nMerge in .* from (?P<SourceBranch>\S*) to (?P<TargetBranch>\S*)`),
	builtin("GitHubPull", `(?i)^Merge pull request #(?P<PullRequestNumber>\d+) (?:from|in) (?P<SourceBranch>\S*)(?: into (?P<TargetBranch>\S*))*`),
	builtin("RemoteTracking", `(?i)^Merge remote-tracking branch '(?P<SourceBranch>[^']*)'(?: into (?P<TargetBranch>\S*))*`),
}

var builtinSquashFormats = []mergeFormat{
	builtin("GitHubSquash", `^.+\(#(?P<PullRequestNumber>\d+)\)$`),
	builtin("BitBucketSquash", `(?i)^Merged in (?P<SourceBranch>\S*) \(pull request #(?P<PullRequestNumber>\d+)\)`),
}

// MergeMessageParser matches commit messages against merge formats.
// Merge commits are tried against the custom formats, then the built-in
// merge formats, then the squash formats. Single-parent commits only ever
// match a squash format.
type MergeMessageParser struct {
	merge []mergeFormat
}

// NewMergeMessageParser compiles custom, a map of format name to pattern,
// ahead of the built-in formats. Custom patterns are case-insensitive and
// tried in name order.
func NewMergeMessageParser(custom map[string]string) (*MergeMessageParser, error) {
	p := &MergeMessageParser{}
	for _, name := range slices.Sorted(maps.Keys(custom)) {
		re, err := regexp.Compile("(?i)" + custom[name])
		if err != nil {
			return nil, fmt.Errorf("merge message format %q: %w", name, err)
		}
		p.merge = append(p.merge, mergeFormat{name: name, re: re})
	}
	p.merge = append(p.merge, builtinMergeFormats...)
	return p, nil
}

// Parse matches the message of a commit. isMerge tells whether the commit
// has more than one parent. The zero MergeMessage means no format matched.
func (p *MergeMessageParser) Parse(message string, isMerge bool) MergeMessage {
	if isMerge {
		for _, f := range p.merge {
			if mm, ok := f.match(message); ok {
				return mm
			}
		}
	}
	for _, f := range builtinSquashFormats {
		if mm, ok := f.match(message); ok {
			return mm
		}
	}
	return MergeMessage{}
}

