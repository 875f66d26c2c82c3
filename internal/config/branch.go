package config

import (
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitversion/internal/semver"
)

// BranchConfig holds per-branch configuration. All fields are pointers
// to support merge semantics: nil means "not set, inherit".
type BranchConfig struct {
	Regex                                 *string                            `yaml:"regex,omitempty"`
	Increment                             *semver.IncrementStrategy          `yaml:"increment,omitempty"`
	Mode                                  *semver.DeploymentMode             `yaml:"mode,omitempty"`
	Label                                 *Label                             `yaml:"label,omitempty"`
	LabelNumberPattern                    *string                            `yaml:"label-number-pattern,omitempty"`
	SourceBranches                        *[]string                          `yaml:"source-branches,omitempty"`
	IsSourceBranchFor                     *[]string                          `yaml:"is-source-branch-for,omitempty"`
	IsMainline                            *bool                              `yaml:"is-mainline,omitempty"`
	IsReleaseBranch                       *bool                              `yaml:"is-release-branch,omitempty"`
	TracksReleaseBranches                 *bool                              `yaml:"tracks-release-branches,omitempty"`
	PreventIncrementOfMergedBranchVersion *bool                              `yaml:"prevent-increment-of-merged-branch-version,omitempty"`
	CommitMessageIncrementing             *semver.CommitMessageIncrementMode `yaml:"commit-message-incrementing,omitempty"`
	PreReleaseWeight                      *int                               `yaml:"pre-release-weight,omitempty"`
}

// UnmarshalYAML accepts "tag" as a legacy spelling of "label" and records
// an explicit null label.
func (bc *BranchConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain BranchConfig
	if err := value.Decode((*plain)(bc)); err != nil {
		return err
	}
	if bc.Label == nil {
		var legacy struct {
			Tag *Label `yaml:"tag"`
		}
		if err := value.Decode(&legacy); err != nil {
			return err
		}
		bc.Label = legacy.Tag
	}
	if labelIsExplicitNull(value, "label", "tag") {
		bc.Label = NoLabel()
	}
	return nil
}

// MergeTo copies non-nil fields from bc into target.
func (bc *BranchConfig) MergeTo(target *BranchConfig) {
	if bc == nil || target == nil {
		return
	}
	if bc.Regex != nil {
		target.Regex = bc.Regex
	}
	if bc.Increment != nil {
		target.Increment = bc.Increment
	}
	if bc.Mode != nil {
		target.Mode = bc.Mode
	}
	if bc.Label != nil {
		target.Label = bc.Label
	}
	if bc.LabelNumberPattern != nil {
		target.LabelNumberPattern = bc.LabelNumberPattern
	}
	if bc.SourceBranches != nil {
		target.SourceBranches = bc.SourceBranches
	}
	if bc.IsSourceBranchFor != nil {
		target.IsSourceBranchFor = bc.IsSourceBranchFor
	}
	if bc.IsMainline != nil {
		target.IsMainline = bc.IsMainline
	}
	if bc.IsReleaseBranch != nil {
		target.IsReleaseBranch = bc.IsReleaseBranch
	}
	if bc.TracksReleaseBranches != nil {
		target.TracksReleaseBranches = bc.TracksReleaseBranches
	}
	if bc.PreventIncrementOfMergedBranchVersion != nil {
		target.PreventIncrementOfMergedBranchVersion = bc.PreventIncrementOfMergedBranchVersion
	}
	if bc.CommitMessageIncrementing != nil {
		target.CommitMessageIncrementing = bc.CommitMessageIncrementing
	}
	if bc.PreReleaseWeight != nil {
		target.PreReleaseWeight = bc.PreReleaseWeight
	}
}

// Clone returns a shallow copy; pointed-to values are shared and never mutated.
func (bc *BranchConfig) Clone() *BranchConfig {
	out := &BranchConfig{}
	bc.MergeTo(out)
	return out
}

// NamedBranchConfig pairs a branch configuration with its key.
type NamedBranchConfig struct {
	Name   string
	Config *BranchConfig
}

// BranchConfigs is an ordered list of branch configurations. Order defines
// match priority: the first entry whose regex matches a branch name wins.
type BranchConfigs []NamedBranchConfig

// Get returns the configuration stored under name.
func (b BranchConfigs) Get(name string) (*BranchConfig, bool) {
	for _, nb := range b {
		if nb.Name == name {
			return nb.Config, true
		}
	}
	return nil, false
}

// Names returns the keys in priority order.
func (b BranchConfigs) Names() []string {
	names := make([]string, 0, len(b))
	for _, nb := range b {
		names = append(names, nb.Name)
	}
	return names
}

// Merge overlays bc onto the entry called name. A new key is inserted
// ahead of the catch-all "unknown" entry, or appended when there is none.
func (b BranchConfigs) Merge(name string, bc *BranchConfig) BranchConfigs {
	if existing, ok := b.Get(name); ok {
		bc.MergeTo(existing)
		return b
	}
	entry := NamedBranchConfig{Name: name, Config: bc.Clone()}
	for i, nb := range b {
		if nb.Name == UnknownBranchKey {
			out := make(BranchConfigs, 0, len(b)+1)
			out = append(out, b[:i]...)
			out = append(out, entry)
			return append(out, b[i:]...)
		}
	}
	return append(b, entry)
}

// UnmarshalYAML decodes a mapping while keeping declaration order.
func (b *BranchConfigs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{"branches must be a mapping"}}
	}
	out := make(BranchConfigs, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		bc := &BranchConfig{}
		if err := value.Content[i+1].Decode(bc); err != nil {
			return fieldError(name, "", err)
		}
		out = append(out, NamedBranchConfig{Name: name, Config: bc})
	}
	*b = out
	return nil
}

// MarshalYAML renders the list as a mapping in priority order.
func (b BranchConfigs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, nb := range b {
		var val yaml.Node
		if err := val.Encode(nb.Config); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: nb.Name}, &val)
	}
	return node, nil
}
