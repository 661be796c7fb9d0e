package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only file version understood.
const CurrentVersion = "1"

// File is the root of a config file.
type File struct {
	Version string   `yaml:"version"`
	Output  string   `yaml:"output,omitempty"`
	Tag     string   `yaml:"tag,omitempty"`
	Records []Record `yaml:"records"`
}

// Record holds the overrides of one record type.
type Record struct {
	Type    string            `yaml:"type"`
	Fields  map[string]string `yaml:"fields,omitempty"`
	Rename  map[string]string `yaml:"rename,omitempty"`
	Skip    StringOrArray     `yaml:"skip,omitempty"`
	Flatten StringOrArray     `yaml:"flatten,omitempty"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}
