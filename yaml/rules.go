// Package yaml reads rule configurations written in YAML.
package yaml

import (
	"fmt"
	"os"

	"github.com/fwojciec/exegesis"
	"gopkg.in/yaml.v3"
)

// ParseRules decodes the rules declared under the top level "rules" mapping.
// Rules are returned in document order.
func ParseRules(data []byte) ([]*exegesis.RuleConfig, error) {
	var file struct {
		Rules yaml.Node `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, exegesis.Errorf(exegesis.EINVALID, "invalid YAML: %v", err)
	}

	rules := file.Rules
	if rules.Kind == 0 {
		return nil, exegesis.Errorf(exegesis.EINVALID, "no 'rules' key")
	}
	if rules.Kind != yaml.MappingNode {
		return nil, exegesis.Errorf(exegesis.EINVALID, "%d:%d: the 'rules' value should be a mapping", rules.Line, rules.Column)
	}

	configs := make([]*exegesis.RuleConfig, 0, len(rules.Content)/2)
	for i := 0; i+1 < len(rules.Content); i += 2 {
		key, value := rules.Content[i], rules.Content[i+1]

		var fields map[string]any
		if err := value.Decode(&fields); err != nil || value.Kind != yaml.MappingNode {
			return nil, exegesis.Errorf(exegesis.EINVALID, "%d:%d: the rule %q should be a mapping", value.Line, value.Column, key.Value)
		}
		cfg, err := exegesis.DecodeRuleConfig(key.Value, fields)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// LoadRules reads and decodes the rules file at path.
func LoadRules(path string) ([]*exegesis.RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	configs, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return configs, nil
}
