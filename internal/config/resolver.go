package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// ResolvedConfiguration is the flattened form of a Config: one effective
// configuration per branch key, in match priority order, with compiled
// patterns. It is immutable and safe for concurrent use.
type ResolvedConfiguration struct {
	entries []EffectiveConfiguration
	byKey   map[string]int
}

// Flatten validates cfg and resolves every branch key in a single pass.
// Branch entries only inherit from the global settings, never from each
// other, so resolution cannot cycle.
func Flatten(cfg *Config) (*ResolvedConfiguration, error) {
	if cfg == nil {
		return nil, &ConfigurationError{Err: errors.New("configuration is nil")}
	}
	if err := validateGlobal(cfg); err != nil {
		return nil, err
	}

	r := &ResolvedConfiguration{
		entries: make([]EffectiveConfiguration, 0, len(cfg.Branches)),
		byKey:   make(map[string]int, len(cfg.Branches)),
	}

	for _, nb := range cfg.Branches {
		if _, dup := r.byKey[nb.Name]; dup {
			return nil, fieldError(nb.Name, "", errors.New("duplicate branch key"))
		}
		bc := nb.Config
		if bc == nil || bc.Regex == nil {
			return nil, fieldError(nb.Name, "regex", errors.New("missing"))
		}
		re, err := regexp.Compile(*bc.Regex)
		if err != nil {
			return nil, fieldError(nb.Name, "regex", err)
		}

		ec := NewEffectiveConfiguration(cfg, nb.Name, bc)
		ec.regex = re

		if ec.LabelNumberPattern != "" {
			np, err := regexp.Compile(ec.LabelNumberPattern)
			if err != nil {
				return nil, fieldError(nb.Name, "label-number-pattern", err)
			}
			ec.numberPattern = np
		}

		r.byKey[nb.Name] = len(r.entries)
		r.entries = append(r.entries, ec)
	}

	for _, ec := range r.entries {
		for _, src := range ec.SourceBranches {
			if _, ok := r.byKey[src]; !ok {
				return nil, fieldError(ec.Key, "source-branches", fmt.Errorf("unknown branch key %q", src))
			}
		}
	}

	return r, nil
}

func validateGlobal(cfg *Config) error {
	prefix := derefString(cfg.TagPrefix, defaultTagPrefix)
	if _, err := regexp.Compile(prefix); err != nil {
		return fieldError("", "tag-prefix", err)
	}
	if _, err := semver.Parse(derefString(cfg.BaseVersion, defaultBaseVersion), ""); err != nil {
		return fieldError("", "base-version", err)
	}
	if cfg.NextVersion != nil && *cfg.NextVersion != "" {
		if _, err := semver.Parse(*cfg.NextVersion, prefix); err != nil {
			return fieldError("", "next-version", err)
		}
	}
	messages := map[string]*string{
		"major-version-bump-message": cfg.MajorVersionBumpMessage,
		"minor-version-bump-message": cfg.MinorVersionBumpMessage,
		"patch-version-bump-message": cfg.PatchVersionBumpMessage,
		"no-bump-message":            cfg.NoBumpMessage,
	}
	for field, pattern := range messages {
		if pattern == nil {
			continue
		}
		if _, err := regexp.Compile(*pattern); err != nil {
			return fieldError("", field, err)
		}
	}
	if cfg.MaxSourceBranchDepth != nil && *cfg.MaxSourceBranchDepth < 0 {
		return fieldError("", "max-source-branch-depth", fmt.Errorf("must not be negative, got %d", *cfg.MaxSourceBranchDepth))
	}
	for name, pattern := range cfg.MergeMessageFormats {
		if _, err := regexp.Compile(pattern); err != nil {
			return fieldError("", "merge-message-formats", fmt.Errorf("%s: %w", name, err))
		}
	}
	return nil
}

// Resolve returns the effective configuration for a branch name. The first
// key whose regex matches wins. When nothing matches, the "unknown" key is
// used if present; otherwise a ConfigurationError is returned.
func (r *ResolvedConfiguration) Resolve(branchName string) (EffectiveConfiguration, error) {
	for _, ec := range r.entries {
		if ec.regex.MatchString(branchName) {
			return ec, nil
		}
	}
	if ec, ok := r.ForKey(UnknownBranchKey); ok {
		return ec, nil
	}
	return EffectiveConfiguration{}, &ConfigurationError{
		Err: fmt.Errorf("%w %q", ErrNoBranchConfiguration, branchName),
	}
}

// ForKey returns the effective configuration stored under a branch key.
func (r *ResolvedConfiguration) ForKey(key string) (EffectiveConfiguration, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return EffectiveConfiguration{}, false
	}
	return r.entries[i], true
}

// Keys returns the branch keys in match priority order.
func (r *ResolvedConfiguration) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for _, ec := range r.entries {
		keys = append(keys, ec.Key)
	}
	return keys
}

// ReleaseBranches returns the configurations flagged is-release-branch.
func (r *ResolvedConfiguration) ReleaseBranches() []EffectiveConfiguration {
	var out []EffectiveConfiguration
	for _, ec := range r.entries {
		if ec.IsReleaseBranch {
			out = append(out, ec)
		}
	}
	return out
}
