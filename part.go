package exegesis

import (
	"strings"

	"cloud.google.com/go/civil"
)

// Part is one node of an extracted content tree. The set of parts is closed:
// only the types declared in this file implement it. Parts own their children
// and never reference their parent or siblings.
type Part interface {
	isPart()
}

// Text is a run of character data. Extraction never produces two
// consecutive Text parts in the same sequence.
type Text string

// Paragraph wraps the content of a paragraph.
type Paragraph []Part

// Header1 wraps the content of a first-level heading.
type Header1 []Part

// Header2 wraps the content of a second-level heading.
type Header2 []Part

// Header3 wraps the content of a third-level heading.
type Header3 []Part

// Emphasis wraps emphasized content.
type Emphasis []Part

// List wraps list items.
type List []Part

// ListItem wraps the content of a single list item.
type ListItem []Part

// Link is a hyperlink around its content.
type Link struct {
	URL     string
	Content []Part
}

// Image references an image. Width and Height are nil when the source element
// carries no usable dimension; Legend is nil without a title attribute.
type Image struct {
	URL    string
	Width  *uint32
	Height *uint32
	Legend *string
}

// Date is a calendar date found in the content.
type Date civil.Date

func (Text) isPart()      {}
func (Paragraph) isPart() {}
func (Header1) isPart()   {}
func (Header2) isPart()   {}
func (Header3) isPart()   {}
func (Emphasis) isPart()  {}
func (List) isPart()      {}
func (ListItem) isPart()  {}
func (Link) isPart()      {}
func (Image) isPart()     {}
func (Date) isPart()      {}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return civil.Date(d).String()
}

// Document is the result of extracting one document boundary of a page.
//
// Title is nil when no title was found. A title element without content
// yields a non-nil empty slice.
type Document struct {
	Title           []Part      `json:"title"`
	PublicationDate *civil.Date `json:"publication_date"`
	Content         []Part      `json:"content"`
}

// Children returns the child parts of p, or nil for leaf parts.
func Children(p Part) []Part {
	switch p := p.(type) {
	case Paragraph:
		return p
	case Header1:
		return p
	case Header2:
		return p
	case Header3:
		return p
	case Emphasis:
		return p
	case List:
		return p
	case ListItem:
		return p
	case Link:
		return p.Content
	}
	return nil
}

// TextOf concatenates the text of parts and all their descendants.
// Dates and images contribute nothing.
func TextOf(parts []Part) string {
	var sb strings.Builder
	writeText(&sb, parts)
	return sb.String()
}

func writeText(sb *strings.Builder, parts []Part) {
	for _, p := range parts {
		if t, ok := p.(Text); ok {
			sb.WriteString(string(t))
			continue
		}
		writeText(sb, Children(p))
	}
}

// NormalizedText returns the text of parts with leading and trailing
// whitespace removed and inner whitespace runs collapsed to one space.
func NormalizedText(parts []Part) string {
	return strings.Join(strings.Fields(TextOf(parts)), " ")
}
