package exegesis

import (
	"fmt"
	"sort"
	"strings"
)

// RuleConfig is the declarative form of a Rule, as read from a rules file.
type RuleConfig struct {
	Name        string           `json:"name"`
	IncludeURL  []string         `json:"includeUrl"`
	DateFormat  string           `json:"dateFormat"`
	Root        string           `json:"root"`
	NestedRoots bool             `json:"nestedRoots"`
	Selectors   []SelectorConfig `json:"selectors"`
}

// SelectorConfig is the declarative form of a Selector.
type SelectorConfig struct {
	Role     Role   `json:"role"`
	Selector string `json:"selector"`
	Priority int    `json:"priority"`
}

// Validate returns an error if the rule contains invalid fields.
func (c *RuleConfig) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "rule name required")
	}
	if len(c.IncludeURL) == 0 {
		return Errorf(EINVALID, "rule %q: include_url required", c.Name)
	}
	for _, pattern := range c.IncludeURL {
		if pattern == "" {
			return Errorf(EINVALID, "rule %q: empty include_url pattern", c.Name)
		}
	}
	for _, s := range c.Selectors {
		if _, err := ParseRole(string(s.Role)); err != nil {
			return Errorf(EINVALID, "rule %q: %s", c.Name, ErrorMessage(err))
		}
		if strings.TrimSpace(s.Selector) == "" {
			return Errorf(EINVALID, "rule %q: empty selector for %s", c.Name, s.Role)
		}
	}
	return nil
}

// DecodeRuleConfig builds a RuleConfig from the generic key/value form
// produced by configuration decoders.
//
// include_url accepts a string or a list of strings. Role keys accept either
// a selector string or a table with "selector" and optional "priority" keys.
// Unknown keys are rejected. Selectors are returned in canonical role order.
func DecodeRuleConfig(name string, fields map[string]any) (*RuleConfig, error) {
	cfg := &RuleConfig{Name: name}
	byRole := make(map[Role]SelectorConfig)

	for _, key := range sortedKeys(fields) {
		value := fields[key]
		switch key {
		case "include_url":
			urls, err := splat(value)
			if err != nil {
				return nil, Errorf(EINVALID, "rule %q: include_url %s", name, err)
			}
			cfg.IncludeURL = append(cfg.IncludeURL, urls...)
		case "date_format":
			s, ok := value.(string)
			if !ok {
				return nil, Errorf(EINVALID, "rule %q: date_format should be a string", name)
			}
			cfg.DateFormat = s
		case "root":
			s, ok := value.(string)
			if !ok {
				return nil, Errorf(EINVALID, "rule %q: root should be a string", name)
			}
			cfg.Root = s
		case "nested_roots":
			b, ok := value.(bool)
			if !ok {
				return nil, Errorf(EINVALID, "rule %q: nested_roots should be a boolean", name)
			}
			cfg.NestedRoots = b
		default:
			role, err := ParseRole(key)
			if err != nil {
				return nil, Errorf(EINVALID, "rule %q: unknown key %q", name, key)
			}
			sel, err := decodeSelector(role, value)
			if err != nil {
				return nil, Errorf(EINVALID, "rule %q: %s %s", name, key, err)
			}
			byRole[role] = sel
		}
	}

	for _, role := range Roles {
		if sel, ok := byRole[role]; ok {
			cfg.Selectors = append(cfg.Selectors, sel)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeSelector(role Role, value any) (SelectorConfig, error) {
	switch v := value.(type) {
	case string:
		return SelectorConfig{Role: role, Selector: v}, nil
	case map[string]any:
		sel := SelectorConfig{Role: role}
		for k, field := range v {
			switch k {
			case "selector":
				s, ok := field.(string)
				if !ok {
					return sel, fmt.Errorf("selector should be a string")
				}
				sel.Selector = s
			case "priority":
				p, ok := toInt(field)
				if !ok {
					return sel, fmt.Errorf("priority should be an integer")
				}
				sel.Priority = p
			default:
				return sel, fmt.Errorf("has unknown key %q", k)
			}
		}
		return sel, nil
	}
	return SelectorConfig{}, fmt.Errorf("should be a string or a table")
}

// splat accepts a string or a list of strings.
func splat(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("should only contain strings")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("should be a string or a list of strings")
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
