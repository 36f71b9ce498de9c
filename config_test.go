package exegesis_test

import (
	"testing"

	"github.com/fwojciec/exegesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRuleConfig(t *testing.T) {
	t.Parallel()

	t.Run("decodes every key", func(t *testing.T) {
		t.Parallel()

		cfg, err := exegesis.DecodeRuleConfig("blog", map[string]any{
			"include_url":  []any{"http://a.com/**", "http://b.com/*"},
			"date_format":  "%Y-%m-%d",
			"root":         "article",
			"nested_roots": true,
			"title":        "h1",
			"paragraph":    map[string]any{"selector": "p", "priority": int64(2)},
			"date":         ".date",
		})

		require.NoError(t, err)
		assert.Equal(t, &exegesis.RuleConfig{
			Name:        "blog",
			IncludeURL:  []string{"http://a.com/**", "http://b.com/*"},
			DateFormat:  "%Y-%m-%d",
			Root:        "article",
			NestedRoots: true,
			Selectors: []exegesis.SelectorConfig{
				{Role: exegesis.RoleDate, Selector: ".date"},
				{Role: exegesis.RoleTitle, Selector: "h1"},
				{Role: exegesis.RoleParagraph, Selector: "p", Priority: 2},
			},
		}, cfg)
	})

	t.Run("accepts a single include_url string", func(t *testing.T) {
		t.Parallel()

		cfg, err := exegesis.DecodeRuleConfig("blog", map[string]any{"include_url": "http://a.com"})

		require.NoError(t, err)
		assert.Equal(t, []string{"http://a.com"}, cfg.IncludeURL)
	})

	t.Run("accepts integer priorities from any decoder", func(t *testing.T) {
		t.Parallel()

		cfg, err := exegesis.DecodeRuleConfig("blog", map[string]any{
			"include_url": "http://a.com",
			"link":        map[string]any{"selector": "a", "priority": 3},
			"image":       map[string]any{"selector": "img", "priority": float64(1)},
		})

		require.NoError(t, err)
		require.Len(t, cfg.Selectors, 2)
		assert.Equal(t, 1, cfg.Selectors[0].Priority)
		assert.Equal(t, 3, cfg.Selectors[1].Priority)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := exegesis.DecodeRuleConfig("blog", map[string]any{
			"include_url": "http://a.com",
			"footer":      "footer",
		})

		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
		assert.Contains(t, exegesis.ErrorMessage(err), "footer")
	})

	t.Run("rejects rules without include_url", func(t *testing.T) {
		t.Parallel()

		_, err := exegesis.DecodeRuleConfig("blog", map[string]any{"title": "h1"})

		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
	})

	t.Run("rejects wrongly typed values", func(t *testing.T) {
		t.Parallel()

		for _, fields := range []map[string]any{
			{"include_url": 3},
			{"include_url": []any{"http://a.com", 3}},
			{"include_url": "http://a.com", "date_format": 1},
			{"include_url": "http://a.com", "root": true},
			{"include_url": "http://a.com", "nested_roots": "yes"},
			{"include_url": "http://a.com", "title": 1},
			{"include_url": "http://a.com", "title": map[string]any{"selector": "h1", "priority": "high"}},
			{"include_url": "http://a.com", "title": map[string]any{"selector": "h1", "weight": 1}},
		} {
			_, err := exegesis.DecodeRuleConfig("blog", fields)
			assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err), "%v", fields)
		}
	})
}

func TestRuleConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		cfg := &exegesis.RuleConfig{IncludeURL: []string{"http://a.com"}}

		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects empty selectors", func(t *testing.T) {
		t.Parallel()

		cfg := &exegesis.RuleConfig{
			Name:       "blog",
			IncludeURL: []string{"http://a.com"},
			Selectors:  []exegesis.SelectorConfig{{Role: exegesis.RoleTitle, Selector: " "}},
		}

		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(cfg.Validate()))
	})

	t.Run("accepts a minimal rule", func(t *testing.T) {
		t.Parallel()

		cfg := &exegesis.RuleConfig{Name: "blog", IncludeURL: []string{"http://a.com"}}

		assert.NoError(t, cfg.Validate())
	})
}
