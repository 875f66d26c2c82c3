package semver

import "gopkg.in/yaml.v3"

func decodeEnum[T any](value *yaml.Node, parse func(string) (T, error), out *T) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parse(s)
	if err != nil {
		return err
	}
	*out = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for DeploymentMode.
func (m *DeploymentMode) UnmarshalYAML(value *yaml.Node) error {
	return decodeEnum(value, ParseDeploymentMode, m)
}

// UnmarshalYAML implements yaml.Unmarshaler for IncrementStrategy.
func (s *IncrementStrategy) UnmarshalYAML(value *yaml.Node) error {
	return decodeEnum(value, ParseIncrementStrategy, s)
}

// UnmarshalYAML implements yaml.Unmarshaler for CommitMessageIncrementMode.
func (m *CommitMessageIncrementMode) UnmarshalYAML(value *yaml.Node) error {
	return decodeEnum(value, ParseCommitMessageIncrementMode, m)
}

// UnmarshalYAML implements yaml.Unmarshaler for CommitMessageConvention.
func (c *CommitMessageConvention) UnmarshalYAML(value *yaml.Node) error {
	return decodeEnum(value, ParseCommitMessageConvention, c)
}

// UnmarshalYAML implements yaml.Unmarshaler for AssemblyVersioningScheme.
func (s *AssemblyVersioningScheme) UnmarshalYAML(value *yaml.Node) error {
	return decodeEnum(value, ParseAssemblyVersioningScheme, s)
}

// UnmarshalYAML implements yaml.Unmarshaler for StrategyKind.
func (k *StrategyKind) UnmarshalYAML(value *yaml.Node) error {
	return decodeEnum(value, ParseStrategyKind, k)
}

// The enums render by name in JSON and YAML output (show-config).

func (m DeploymentMode) MarshalText() ([]byte, error)             { return []byte(m.String()), nil }
func (s IncrementStrategy) MarshalText() ([]byte, error)          { return []byte(s.String()), nil }
func (m CommitMessageIncrementMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (c CommitMessageConvention) MarshalText() ([]byte, error)    { return []byte(c.String()), nil }
func (s AssemblyVersioningScheme) MarshalText() ([]byte, error)   { return []byte(s.String()), nil }
func (k StrategyKind) MarshalText() ([]byte, error)               { return []byte(k.String()), nil }
func (f VersionField) MarshalText() ([]byte, error)               { return []byte(f.String()), nil }
