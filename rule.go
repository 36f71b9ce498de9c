package exegesis

import (
	"golang.org/x/net/html"
)

// Extractor turns an element tree into documents.
type Extractor interface {
	// Extract never fails. Part construction errors are reported to sink
	// and the offending subtree is dropped.
	Extract(root *html.Node, sink ErrorSink) []*Document
}

// WebsiteExtractor extracts documents from a whole website.
type WebsiteExtractor interface {
	ExtractWebsite(w *Website, sink ErrorSink) ([]*Document, error)
}

// Rule pairs URL matchers with the extractor used for matching websites.
type Rule struct {
	Name      string
	Matchers  []*URLMatcher
	Extractor Extractor
}

// Applies reports whether any of the rule's matchers accepts the website.
func (r *Rule) Applies(w *Website) bool {
	for _, m := range r.Matchers {
		if m.Matches(w) {
			return true
		}
	}
	return false
}

// RuleSet is an ordered list of rules. The first applicable rule wins.
// It is immutable once built and may then be shared between goroutines.
type RuleSet struct {
	rules []*Rule
}

var _ WebsiteExtractor = (*RuleSet)(nil)

// NewRuleSet returns a rule set containing rules in order.
func NewRuleSet(rules ...*Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Add appends a rule.
func (s *RuleSet) Add(r *Rule) {
	s.rules = append(s.rules, r)
}

// Append adds every rule of other after the rules already in s.
func (s *RuleSet) Append(other *RuleSet) {
	s.rules = append(s.rules, other.rules...)
}

// Rules returns the rules in order.
func (s *RuleSet) Rules() []*Rule {
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// Find returns the first rule that applies to w.
func (s *RuleSet) Find(w *Website) (*Rule, error) {
	for _, r := range s.rules {
		if r.Applies(w) {
			return r, nil
		}
	}
	return nil, Errorf(ENORULE, "no rule matches %s", w.URL)
}

// ExtractWebsite extracts w with the first applicable rule.
func (s *RuleSet) ExtractWebsite(w *Website, sink ErrorSink) ([]*Document, error) {
	if w.Root == nil {
		return nil, Errorf(ENODOCUMENT, "website %s has no document", w.URL)
	}
	r, err := s.Find(w)
	if err != nil {
		return nil, err
	}
	return r.Extractor.Extract(w.Root, sink), nil
}

// Extract extracts documents from w using rules. A nil sink discards part
// errors.
func Extract(w *Website, rules *RuleSet, sink ErrorSink) ([]*Document, error) {
	if sink == nil {
		sink = DiscardErrors
	}
	return rules.ExtractWebsite(w, sink)
}

// FallbackExtractor tries Primary and, when no rule applies, Fallback.
type FallbackExtractor struct {
	Primary  WebsiteExtractor
	Fallback WebsiteExtractor
}

var _ WebsiteExtractor = (*FallbackExtractor)(nil)

func (e *FallbackExtractor) ExtractWebsite(w *Website, sink ErrorSink) ([]*Document, error) {
	docs, err := e.Primary.ExtractWebsite(w, sink)
	if ErrorCode(err) == ENORULE && e.Fallback != nil {
		return e.Fallback.ExtractWebsite(w, sink)
	}
	return docs, err
}
