package config

import (
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// EffectiveConfiguration is the fully resolved configuration for one branch
// key: every branch field merged over the global value and the hard default.
// Values are read-only once produced by Flatten.
type EffectiveConfiguration struct {
	// Key is the branch configuration key the values were resolved from.
	Key   string
	Regex string

	Mode               semver.DeploymentMode
	Increment          semver.IncrementStrategy
	Label              *string // nil: no pre-release suffix
	LabelNumberPattern string

	TagPrefix                        string
	BaseVersion                      string
	NextVersion                      string
	AssemblyVersioningScheme         semver.AssemblyVersioningScheme
	CommitMessageIncrementing        semver.CommitMessageIncrementMode
	CommitMessageConvention          semver.CommitMessageConvention
	MajorVersionBumpMessage          string
	MinorVersionBumpMessage          string
	PatchVersionBumpMessage          string
	NoBumpMessage                    string
	CommitDateFormat                 string
	TagPreReleaseWeight              int64
	LegacySemVerPadding              int
	BuildMetaDataPadding             int
	CommitsSinceVersionSourcePadding int
	Strategies                       []semver.StrategyKind
	MaxSourceBranchDepth             int

	SourceBranches                        []string
	IsMainline                            bool
	IsReleaseBranch                       bool
	TracksReleaseBranches                 bool
	PreventIncrementOfMergedBranchVersion bool
	PreReleaseWeight                      int

	Ignore              IgnoreConfig
	MergeMessageFormats map[string]string

	regex         *regexp.Regexp
	numberPattern *regexp.Regexp
}

// NewEffectiveConfiguration resolves the pointer fields of cfg and branch.
// Increment Inherit falls back to the global increment, then to Patch.
func NewEffectiveConfiguration(cfg *Config, key string, branch *BranchConfig) EffectiveConfiguration {
	if branch == nil {
		branch = &BranchConfig{}
	}

	ec := EffectiveConfiguration{
		Key:                              key,
		Regex:                            derefString(branch.Regex, ""),
		Mode:                             derefMode(branch.Mode, derefMode(cfg.Mode, semver.DeploymentModeContinuousDelivery)),
		Increment:                        resolveIncrement(branch.Increment, cfg.Increment),
		Label:                            resolveLabel(branch.Label, cfg.Label),
		LabelNumberPattern:               derefString(branch.LabelNumberPattern, ""),
		TagPrefix:                        derefString(cfg.TagPrefix, defaultTagPrefix),
		BaseVersion:                      derefString(cfg.BaseVersion, defaultBaseVersion),
		NextVersion:                      derefString(cfg.NextVersion, ""),
		AssemblyVersioningScheme:         deref(cfg.AssemblyVersioningScheme, semver.AssemblyVersioningSchemeMajorMinorPatch),
		CommitMessageIncrementing:        deref(branch.CommitMessageIncrementing, deref(cfg.CommitMessageIncrementing, semver.CommitMessageIncrementEnabled)),
		CommitMessageConvention:          deref(cfg.CommitMessageConvention, semver.CommitMessageConventionBoth),
		MajorVersionBumpMessage:          derefString(cfg.MajorVersionBumpMessage, defaultMajorBumpMessage),
		MinorVersionBumpMessage:          derefString(cfg.MinorVersionBumpMessage, defaultMinorBumpMessage),
		PatchVersionBumpMessage:          derefString(cfg.PatchVersionBumpMessage, defaultPatchBumpMessage),
		NoBumpMessage:                    derefString(cfg.NoBumpMessage, defaultNoBumpMessage),
		CommitDateFormat:                 derefString(cfg.CommitDateFormat, "2006-01-02"),
		TagPreReleaseWeight:              deref(cfg.TagPreReleaseWeight, 60000),
		LegacySemVerPadding:              deref(cfg.LegacySemVerPadding, 4),
		BuildMetaDataPadding:             deref(cfg.BuildMetaDataPadding, 4),
		CommitsSinceVersionSourcePadding: deref(cfg.CommitsSinceVersionSourcePadding, 4),
		MaxSourceBranchDepth:             deref(cfg.MaxSourceBranchDepth, defaultMaxSourceBranchDepth),

		IsMainline:                            derefBool(branch.IsMainline, false),
		IsReleaseBranch:                       derefBool(branch.IsReleaseBranch, false),
		TracksReleaseBranches:                 derefBool(branch.TracksReleaseBranches, false),
		PreventIncrementOfMergedBranchVersion: derefBool(branch.PreventIncrementOfMergedBranchVersion, false),
		PreReleaseWeight:                      deref(branch.PreReleaseWeight, 0),

		Ignore:              cfg.Ignore,
		MergeMessageFormats: cfg.MergeMessageFormats,
	}

	if cfg.Strategies != nil {
		ec.Strategies = append([]semver.StrategyKind(nil), *cfg.Strategies...)
	} else {
		ec.Strategies = semver.DefaultStrategies()
	}
	if branch.SourceBranches != nil {
		ec.SourceBranches = append([]string(nil), *branch.SourceBranches...)
	}

	return ec
}

func resolveIncrement(branch, global *semver.IncrementStrategy) semver.IncrementStrategy {
	if branch != nil && *branch != semver.IncrementStrategyInherit {
		return *branch
	}
	if global != nil && *global != semver.IncrementStrategyInherit {
		return *global
	}
	return semver.IncrementStrategyPatch
}

func resolveLabel(branch, global *Label) *string {
	l := branch
	if l == nil {
		l = global
	}
	if l == nil {
		l = LabelOf("{BranchName}")
	}
	if l.IsNone() {
		return nil
	}
	v := l.Value()
	return &v
}

// HasStrategy reports whether the base-version strategy is enabled.
func (ec EffectiveConfiguration) HasStrategy(kind semver.StrategyKind) bool {
	for _, k := range ec.Strategies {
		if k == kind {
			return true
		}
	}
	return false
}

// MatchesBranch reports whether the configuration's regex matches name.
func (ec EffectiveConfiguration) MatchesBranch(name string) bool {
	re := ec.regex
	if re == nil {
		compiled, err := regexp.Compile(ec.Regex)
		if err != nil {
			return false
		}
		re = compiled
	}
	return re.MatchString(name)
}

var branchNameCleaner = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// LabelFor resolves the pre-release label for a branch. The second result
// is false when the configuration disables the pre-release suffix.
//
// {BranchName} is replaced by the branch name with the configuration's
// regex match stripped from its start (or the "BranchName" capture group
// when the regex defines one). {Number} is replaced by the first group
// captured by label-number-pattern.
func (ec EffectiveConfiguration) LabelFor(branchName string) (string, bool) {
	if ec.Label == nil {
		return "", false
	}
	label := *ec.Label
	if strings.Contains(label, "{BranchName}") {
		cleaned := branchNameCleaner.ReplaceAllString(ec.stripBranchPrefix(branchName), "-")
		label = strings.ReplaceAll(label, "{BranchName}", cleaned)
	}
	if strings.Contains(label, "{Number}") {
		label = strings.ReplaceAll(label, "{Number}", ec.labelNumber(branchName))
	}
	return label, true
}

func (ec EffectiveConfiguration) stripBranchPrefix(name string) string {
	re := ec.regex
	if re == nil {
		return name
	}
	if idx := re.SubexpIndex("BranchName"); idx > 0 {
		if m := re.FindStringSubmatch(name); m != nil && m[idx] != "" {
			return m[idx]
		}
	}
	loc := re.FindStringIndex(name)
	if loc == nil || loc[0] != 0 || loc[1] >= len(name) {
		return name
	}
	return name[loc[1]:]
}

func (ec EffectiveConfiguration) labelNumber(name string) string {
	if ec.numberPattern == nil {
		return ""
	}
	m := ec.numberPattern.FindStringSubmatch(name)
	if len(m) < 2 {
		return ""
	}
	if idx := ec.numberPattern.SubexpIndex("number"); idx > 0 {
		return m[idx]
	}
	return m[1]
}

func deref[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

func derefString(p *string, fallback string) string { return deref(p, fallback) }

func derefBool(p *bool, fallback bool) bool { return deref(p, fallback) }

func derefMode(p *semver.DeploymentMode, fallback semver.DeploymentMode) semver.DeploymentMode {
	return deref(p, fallback)
}
