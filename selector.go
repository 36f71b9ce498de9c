package exegesis

import (
	"golang.org/x/net/html"
)

// Role names the kind of Part a selector produces.
type Role string

// Selector roles.
const (
	RoleDate            Role = "date"
	RolePublicationDate Role = "publication-date"
	RoleTitle           Role = "title"
	RoleParagraph       Role = "paragraph"
	RoleHeader1         Role = "header1"
	RoleHeader2         Role = "header2"
	RoleHeader3         Role = "header3"
	RoleEmphasis        Role = "emphasis"
	RoleImage           Role = "image"
	RoleLink            Role = "link"
	RoleList            Role = "list"
	RoleListItem        Role = "list-item"
)

// Roles lists every role in canonical order.
var Roles = []Role{
	RoleDate,
	RolePublicationDate,
	RoleTitle,
	RoleParagraph,
	RoleHeader1,
	RoleHeader2,
	RoleHeader3,
	RoleEmphasis,
	RoleImage,
	RoleLink,
	RoleList,
	RoleListItem,
}

func (r Role) String() string { return string(r) }

// ParseRole returns the role named s.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", Errorf(EINVALID, "unknown role %q", s)
}

// Query decides whether an element matches. Compiled CSS selectors satisfy it.
type Query interface {
	Match(n *html.Node) bool
}

// QueryFunc adapts a function to the Query interface.
type QueryFunc func(n *html.Node) bool

func (f QueryFunc) Match(n *html.Node) bool { return f(n) }

// Selector binds a query to a role. Higher priorities are tried first.
type Selector struct {
	Role     Role
	Query    Query
	Priority int
}

// SelectorSet is an ordered collection of selectors kept in non-increasing
// priority order. Selectors with equal priority keep their insertion order.
//
// A SelectorSet must not be modified once extraction starts; after that it
// is safe for concurrent use.
type SelectorSet struct {
	selectors []Selector
}

// NewSelectorSet returns a set containing selectors, added in order.
func NewSelectorSet(selectors ...Selector) *SelectorSet {
	s := &SelectorSet{}
	for _, sel := range selectors {
		s.Add(sel)
	}
	return s
}

// Add inserts sel before the first selector with a strictly lower priority,
// or appends it when there is none.
func (s *SelectorSet) Add(sel Selector) {
	for i, existing := range s.selectors {
		if existing.Priority < sel.Priority {
			s.selectors = append(s.selectors, Selector{})
			copy(s.selectors[i+1:], s.selectors[i:])
			s.selectors[i] = sel
			return
		}
	}
	s.selectors = append(s.selectors, sel)
}

// Match returns the first selector whose query matches n.
func (s *SelectorSet) Match(n *html.Node) (Selector, bool) {
	for _, sel := range s.selectors {
		if sel.Query.Match(n) {
			return sel, true
		}
	}
	return Selector{}, false
}

// All returns the selectors in evaluation order.
func (s *SelectorSet) All() []Selector {
	out := make([]Selector, len(s.selectors))
	copy(out, s.selectors)
	return out
}

// Len returns the number of selectors.
func (s *SelectorSet) Len() int { return len(s.selectors) }
