package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// minIgnoreShaLen is the shortest abbreviated sha accepted as a prefix.
const minIgnoreShaLen = 7

// commitsBeforeLayouts are tried in order when decoding commits-before.
var commitsBeforeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IgnoreConfig excludes commits from base version selection. Version
// sources anchored at an excluded commit are dropped; the fallback source
// never is.
type IgnoreConfig struct {
	CommitsBefore *time.Time `yaml:"commits-before"`
	Sha           []string   `yaml:"sha"`
}

// IsEmpty reports whether no exclusion rule is set.
func (c IgnoreConfig) IsEmpty() bool {
	return c.CommitsBefore == nil && len(c.Sha) == 0
}

// Excludes reports whether a commit with the given sha and commit time is
// excluded. Sha entries match the full sha or, when at least seven
// characters long, an abbreviation of it.
func (c IgnoreConfig) Excludes(sha string, when time.Time) bool {
	if c.CommitsBefore != nil && when.Before(*c.CommitsBefore) {
		return true
	}
	for _, s := range c.Sha {
		if s == sha || (len(s) >= minIgnoreShaLen && strings.HasPrefix(sha, s)) {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts commits-before as RFC3339, a zone-less timestamp
// or a plain date, and lower-cases the sha entries.
func (c *IgnoreConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		CommitsBefore string   `yaml:"commits-before"`
		Sha           []string `yaml:"sha"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.CommitsBefore != "" {
		when, err := parseCommitsBefore(raw.CommitsBefore)
		if err != nil {
			return err
		}
		c.CommitsBefore = &when
	}

	c.Sha = nil
	for _, s := range raw.Sha {
		s = strings.ToLower(strings.TrimSpace(s))
		if !isHex(s) {
			return fmt.Errorf("ignore.sha: %q is not a commit sha", s)
		}
		c.Sha = append(c.Sha, s)
	}
	return nil
}

func parseCommitsBefore(s string) (time.Time, error) {
	for _, layout := range commitsBeforeLayouts {
		if when, err := time.Parse(layout, s); err == nil {
			return when, nil
		}
	}
	return time.Time{}, fmt.Errorf("ignore.commits-before: cannot parse %q, want RFC3339 or YYYY-MM-DD", s)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
