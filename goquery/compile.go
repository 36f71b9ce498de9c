package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/exegesis"
)

// CompileQuery compiles a CSS selector group into a query.
func CompileQuery(selector string) (exegesis.Query, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, exegesis.Errorf(exegesis.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return sel, nil
}

// CompileRule builds a rule from its configuration.
func CompileRule(cfg *exegesis.RuleConfig) (*exegesis.Rule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rule := &exegesis.Rule{Name: cfg.Name}
	for _, pattern := range cfg.IncludeURL {
		m, err := exegesis.NewURLMatcher(pattern)
		if err != nil {
			return nil, exegesis.Errorf(exegesis.EINVALID, "rule %q: %s", cfg.Name, exegesis.ErrorMessage(err))
		}
		rule.Matchers = append(rule.Matchers, m)
	}

	opts := Options{DateFormat: cfg.DateFormat, NestedRoots: cfg.NestedRoots}
	if cfg.Root != "" {
		q, err := CompileQuery(cfg.Root)
		if err != nil {
			return nil, exegesis.Errorf(exegesis.EINVALID, "rule %q: root: %s", cfg.Name, exegesis.ErrorMessage(err))
		}
		opts.Root = q
	}

	selectors := make([]exegesis.Selector, 0, len(cfg.Selectors))
	for _, sc := range cfg.Selectors {
		q, err := CompileQuery(sc.Selector)
		if err != nil {
			return nil, exegesis.Errorf(exegesis.EINVALID, "rule %q: %s: %s", cfg.Name, sc.Role, exegesis.ErrorMessage(err))
		}
		selectors = append(selectors, exegesis.Selector{Role: sc.Role, Query: q, Priority: sc.Priority})
	}

	rule.Extractor = NewExtractor(opts, selectors...)
	return rule, nil
}

// Compile builds a rule set from configurations, keeping their order.
func Compile(configs []*exegesis.RuleConfig) (*exegesis.RuleSet, error) {
	rules := exegesis.NewRuleSet()
	for _, cfg := range configs {
		rule, err := CompileRule(cfg)
		if err != nil {
			return nil, err
		}
		rules.Add(rule)
	}
	return rules, nil
}
