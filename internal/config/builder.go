package config

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Later overrides take precedence.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build starts from the defaults, applies all overrides, resolves
// is-source-branch-for and validates the result.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	finalizeBranches(cfg)

	if _, err := Flatten(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.AssemblyVersioningScheme != nil {
		dst.AssemblyVersioningScheme = src.AssemblyVersioningScheme
	}
	if src.Mode != nil {
		dst.Mode = src.Mode
	}
	if src.Label != nil {
		dst.Label = src.Label
	}
	if src.TagPrefix != nil {
		dst.TagPrefix = src.TagPrefix
	}
	if src.BaseVersion != nil {
		dst.BaseVersion = src.BaseVersion
	}
	if src.NextVersion != nil {
		dst.NextVersion = src.NextVersion
	}
	if src.Increment != nil {
		dst.Increment = src.Increment
	}
	if src.CommitMessageIncrementing != nil {
		dst.CommitMessageIncrementing = src.CommitMessageIncrementing
	}
	if src.CommitMessageConvention != nil {
		dst.CommitMessageConvention = src.CommitMessageConvention
	}
	if src.MajorVersionBumpMessage != nil {
		dst.MajorVersionBumpMessage = src.MajorVersionBumpMessage
	}
	if src.MinorVersionBumpMessage != nil {
		dst.MinorVersionBumpMessage = src.MinorVersionBumpMessage
	}
	if src.PatchVersionBumpMessage != nil {
		dst.PatchVersionBumpMessage = src.PatchVersionBumpMessage
	}
	if src.NoBumpMessage != nil {
		dst.NoBumpMessage = src.NoBumpMessage
	}
	if src.CommitDateFormat != nil {
		dst.CommitDateFormat = src.CommitDateFormat
	}
	if src.TagPreReleaseWeight != nil {
		dst.TagPreReleaseWeight = src.TagPreReleaseWeight
	}
	if src.LegacySemVerPadding != nil {
		dst.LegacySemVerPadding = src.LegacySemVerPadding
	}
	if src.BuildMetaDataPadding != nil {
		dst.BuildMetaDataPadding = src.BuildMetaDataPadding
	}
	if src.CommitsSinceVersionSourcePadding != nil {
		dst.CommitsSinceVersionSourcePadding = src.CommitsSinceVersionSourcePadding
	}
	if src.Strategies != nil {
		dst.Strategies = src.Strategies
	}
	if src.MaxSourceBranchDepth != nil {
		dst.MaxSourceBranchDepth = src.MaxSourceBranchDepth
	}

	for _, nb := range src.Branches {
		dst.Branches = dst.Branches.Merge(nb.Name, nb.Config)
	}

	if src.MergeMessageFormats != nil {
		if dst.MergeMessageFormats == nil {
			dst.MergeMessageFormats = make(map[string]string)
		}
		for k, v := range src.MergeMessageFormats {
			dst.MergeMessageFormats[k] = v
		}
	}

	if src.Ignore.CommitsBefore != nil {
		dst.Ignore.CommitsBefore = src.Ignore.CommitsBefore
	}
	if src.Ignore.Sha != nil {
		dst.Ignore.Sha = src.Ignore.Sha
	}
}

// finalizeBranches turns is-source-branch-for into source-branches entries
// on the targets.
func finalizeBranches(cfg *Config) {
	for _, nb := range cfg.Branches {
		if nb.Config.IsSourceBranchFor == nil {
			continue
		}
		for _, targetName := range *nb.Config.IsSourceBranchFor {
			target, ok := cfg.Branches.Get(targetName)
			if !ok {
				continue
			}
			var sources []string
			if target.SourceBranches != nil {
				sources = append(sources, *target.SourceBranches...)
			}
			if !sliceContains(sources, nb.Name) {
				sources = append(sources, nb.Name)
			}
			target.SourceBranches = &sources
		}
	}
}
