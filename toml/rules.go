// Package toml reads rule configurations written in TOML.
package toml

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/fwojciec/exegesis"
	"github.com/pelletier/go-toml/v2"
)

// ParseRules decodes the rules declared under the [rules] table.
//
// TOML tables are unordered, so rules are returned sorted by name.
func ParseRules(data []byte) ([]*exegesis.RuleConfig, error) {
	var file map[string]any
	if err := toml.Unmarshal(data, &file); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, exegesis.Errorf(exegesis.EINVALID, "%d:%d: %s", row, col, decodeErr.Error())
		}
		return nil, exegesis.Errorf(exegesis.EINVALID, "invalid TOML: %v", err)
	}

	raw, ok := file["rules"]
	if !ok {
		return nil, exegesis.Errorf(exegesis.EINVALID, "no 'rules' key")
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, exegesis.Errorf(exegesis.EINVALID, "the 'rules' value should be a table")
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := make([]*exegesis.RuleConfig, 0, len(names))
	for _, name := range names {
		fields, ok := table[name].(map[string]any)
		if !ok {
			return nil, exegesis.Errorf(exegesis.EINVALID, "the rule %q should be a table", name)
		}
		cfg, err := exegesis.DecodeRuleConfig(name, fields)
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
