package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Label is a pre-release label setting. A nil *Label inherits from the
// enclosing scope. A none Label (YAML null) suppresses the pre-release
// suffix. An empty value yields a number-only pre-release.
type Label struct {
	value string
	none  bool
}

// LabelOf returns a label with the given value. "{BranchName}" and
// "{Number}" placeholders are substituted at resolution time.
func LabelOf(value string) *Label {
	return &Label{value: value}
}

// NoLabel returns a label that disables the pre-release suffix.
func NoLabel() *Label {
	return &Label{none: true}
}

// IsNone reports whether the label disables the pre-release suffix.
func (l *Label) IsNone() bool { return l != nil && l.none }

// Value returns the raw label value.
func (l *Label) Value() string {
	if l == nil {
		return ""
	}
	return l.value
}

func (l *Label) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*l = Label{value: s}
	return nil
}

func (l Label) MarshalYAML() (any, error) {
	if l.none {
		return nil, nil
	}
	return l.value, nil
}

func (l Label) MarshalJSON() ([]byte, error) {
	if l.none {
		return []byte("null"), nil
	}
	return json.Marshal(l.value)
}

// labelIsExplicitNull reports whether a mapping node sets one of keys to null.
// yaml.v3 never calls UnmarshalYAML for null scalars, so null labels are
// detected on the enclosing mapping instead.
func labelIsExplicitNull(node *yaml.Node, keys ...string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		for _, key := range keys {
			if k.Value == key && v.Kind == yaml.ScalarNode && v.ShortTag() == "!!null" {
				return true
			}
		}
	}
	return false
}
