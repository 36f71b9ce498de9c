package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/exegesis"
)

// genericSelectors classifies plain semantic HTML. Headings are shifted down
// one level so that h1 and h2 both map to the top heading role.
var genericSelectors = []struct {
	role     exegesis.Role
	selector string
}{
	{exegesis.RoleParagraph, "p"},
	{exegesis.RoleHeader1, "h1, h2"},
	{exegesis.RoleHeader2, "h3"},
	{exegesis.RoleHeader3, "h4, h5, h6"},
	{exegesis.RoleEmphasis, "em, strong, b, i"},
	{exegesis.RoleList, "ul, ol"},
	{exegesis.RoleListItem, "li"},
	{exegesis.RoleLink, "a[href]"},
	{exegesis.RoleImage, "img[src]"},
}

// NewGenericExtractor returns an extractor that understands common HTML
// elements without any site specific configuration. It is used to convert
// content located by other means.
func NewGenericExtractor() *Extractor {
	selectors := make([]exegesis.Selector, 0, len(genericSelectors))
	for _, g := range genericSelectors {
		selectors = append(selectors, exegesis.Selector{
			Role:  g.role,
			Query: cascadia.MustCompile(g.selector),
		})
	}
	return NewExtractor(Options{}, selectors...)
}
