package exegesis

import (
	"regexp"
	"strings"
)

// CompilePattern compiles a URL glob into an anchored regular expression.
//
// "*" matches any run of characters except "/", "**" matches anything, and
// a "/" directly before either glob is optional, so "http://a.com/*" also
// matches "http://a.com".
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, `/\*\*`, `(?:/.*)?`)
	quoted = strings.ReplaceAll(quoted, `\*\*`, `.*`)
	quoted = strings.ReplaceAll(quoted, `/\*`, `(?:/[^/]*)?`)
	quoted = strings.ReplaceAll(quoted, `\*`, `[^/]*`)

	re, err := regexp.Compile("^" + quoted + "$")
	if err != nil {
		return nil, Errorf(EINVALID, "invalid url pattern %q: %v", pattern, err)
	}
	return re, nil
}

// URLMatcher decides whether a rule applies to a website by its request URL.
type URLMatcher struct {
	Pattern string
	re      *regexp.Regexp
}

// NewURLMatcher compiles pattern into a matcher.
func NewURLMatcher(pattern string) (*URLMatcher, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &URLMatcher{Pattern: pattern, re: re}, nil
}

// Matches reports whether the website's request URL matches the pattern.
func (m *URLMatcher) Matches(w *Website) bool {
	return m.MatchString(w.URL)
}

// MatchString reports whether url matches the pattern.
func (m *URLMatcher) MatchString(url string) bool {
	return m.re.MatchString(url)
}
