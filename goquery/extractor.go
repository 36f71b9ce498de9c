package goquery

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/exegesis"
	"golang.org/x/net/html"
)

// Options configures an Extractor.
type Options struct {
	// DateFormat is the strftime-style format used by the date and
	// publication-date roles. Without it those roles always fail.
	DateFormat string

	// Root splits the tree into one document per matching element. When nil
	// the whole tree is a single document.
	Root exegesis.Query

	// NestedRoots also searches inside a matched root for further roots.
	// Outer documents are emitted before the documents nested in them.
	NestedRoots bool
}

// Compile-time interface verification.
var _ exegesis.Extractor = (*Extractor)(nil)

// Extractor walks an element tree and classifies elements with a priority
// ordered selector set. It is immutable and safe for concurrent use.
type Extractor struct {
	selectors *exegesis.SelectorSet
	options   Options
}

// NewExtractor creates an Extractor from options and selectors, which are
// added in order.
func NewExtractor(opts Options, selectors ...exegesis.Selector) *Extractor {
	return &Extractor{
		selectors: exegesis.NewSelectorSet(selectors...),
		options:   opts,
	}
}

// Selectors returns the extractor's selectors in evaluation order.
func (e *Extractor) Selectors() []exegesis.Selector {
	return e.selectors.All()
}

// Options returns the extractor's options.
func (e *Extractor) Options() Options {
	return e.options
}

// Extract returns the documents found under root. Part errors are reported
// to sink and the offending element is dropped.
//
// Recursion depth equals tree depth. Callers extracting hostile input should
// bound the tree depth first; the walk can be turned into an explicit stack
// without changing its output.
func (e *Extractor) Extract(root *html.Node, sink exegesis.ErrorSink) []*exegesis.Document {
	if root == nil {
		return nil
	}
	if sink == nil {
		sink = exegesis.DiscardErrors
	}

	sel := goquery.NewDocumentFromNode(root).Selection
	if e.options.Root == nil {
		return []*exegesis.Document{e.extractDocument(sel, sink)}
	}

	var docs []*exegesis.Document
	e.findRoots(sel, sink, &docs)
	return docs
}

// findRoots searches sel depth first for document roots.
func (e *Extractor) findRoots(sel *goquery.Selection, sink exegesis.ErrorSink, docs *[]*exegesis.Document) {
	n := sel.Get(0)
	if n.Type == html.ElementNode && e.options.Root.Match(n) {
		*docs = append(*docs, e.extractDocument(sel, sink))
		if !e.options.NestedRoots {
			return
		}
	}
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		e.findRoots(child, sink, docs)
	})
}

func (e *Extractor) extractDocument(sel *goquery.Selection, sink exegesis.ErrorSink) *exegesis.Document {
	doc := &exegesis.Document{}
	doc.Content = e.extractChildren(sel, doc, nil, sink)
	return doc
}

// extractChildren appends the parts found in the children of sel to acc.
func (e *Extractor) extractChildren(sel *goquery.Selection, doc *exegesis.Document, acc []exegesis.Part, sink exegesis.ErrorSink) []exegesis.Part {
	ignoreText := isRawText(sel)

	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		n := child.Get(0)
		switch n.Type {
		case html.ElementNode:
			s, ok := e.selectors.Match(n)
			if !ok {
				acc = e.extractChildren(child, doc, acc, sink)
				return
			}
			children := e.extractChildren(child, doc, nil, sink)
			part, err := e.buildPart(s.Role, child, children, doc)
			if err != nil {
				sink.ReportError(&exegesis.PartError{Role: s.Role, Tag: goquery.NodeName(child), Err: err})
				return
			}
			if part != nil {
				acc = append(acc, part)
			}
		case html.TextNode:
			if ignoreText || n.Data == "" {
				return
			}
			acc = appendText(acc, n.Data)
		}
	})

	return acc
}

// buildPart turns a matched element into a part. Title and publication date
// update doc and return a nil part.
func (e *Extractor) buildPart(role exegesis.Role, sel *goquery.Selection, children []exegesis.Part, doc *exegesis.Document) (exegesis.Part, error) {
	switch role {
	case exegesis.RoleTitle:
		if children == nil {
			children = []exegesis.Part{}
		}
		doc.Title = children
		return nil, nil
	case exegesis.RolePublicationDate:
		date, err := e.parseDate(children)
		if err != nil {
			return nil, err
		}
		doc.PublicationDate = &date
		return nil, nil
	case exegesis.RoleDate:
		date, err := e.parseDate(children)
		if err != nil {
			return nil, err
		}
		return exegesis.Date(date), nil
	case exegesis.RoleParagraph:
		return exegesis.Paragraph(children), nil
	case exegesis.RoleHeader1:
		return exegesis.Header1(children), nil
	case exegesis.RoleHeader2:
		return exegesis.Header2(children), nil
	case exegesis.RoleHeader3:
		return exegesis.Header3(children), nil
	case exegesis.RoleEmphasis:
		return exegesis.Emphasis(children), nil
	case exegesis.RoleList:
		return exegesis.List(children), nil
	case exegesis.RoleListItem:
		return exegesis.ListItem(children), nil
	case exegesis.RoleLink:
		href, ok := sel.Attr("href")
		if !ok {
			return nil, exegesis.Errorf(exegesis.EINVALID, "link has no href attribute")
		}
		return exegesis.Link{URL: href, Content: children}, nil
	case exegesis.RoleImage:
		src, ok := sel.Attr("src")
		if !ok {
			return nil, exegesis.Errorf(exegesis.EINVALID, "image has no src attribute")
		}
		img := exegesis.Image{
			URL:    src,
			Width:  dimension(sel, "width"),
			Height: dimension(sel, "height"),
		}
		if title, ok := sel.Attr("title"); ok {
			img.Legend = &title
		}
		return img, nil
	}
	return nil, exegesis.Errorf(exegesis.EINVALID, "unknown role %q", role)
}

func (e *Extractor) parseDate(children []exegesis.Part) (civil.Date, error) {
	if e.options.DateFormat == "" {
		return civil.Date{}, exegesis.Errorf(exegesis.EINVALID, "no date format configured")
	}
	return exegesis.ParseDate(e.options.DateFormat, exegesis.TextOf(children))
}

// appendText merges text into a trailing Text part.
func appendText(acc []exegesis.Part, text string) []exegesis.Part {
	if len(acc) > 0 {
		if last, ok := acc[len(acc)-1].(exegesis.Text); ok {
			acc[len(acc)-1] = last + exegesis.Text(text)
			return acc
		}
	}
	return append(acc, exegesis.Text(text))
}

// isRawText reports whether sel is a script or style element, whose text is
// never content.
func isRawText(sel *goquery.Selection) bool {
	n := sel.Get(0)
	if n.Type != html.ElementNode {
		return false
	}
	name := goquery.NodeName(sel)
	return strings.EqualFold(name, "script") || strings.EqualFold(name, "style")
}

// dimension parses an unsigned size attribute. One leading '+' is allowed;
// surrounding whitespace is not. Missing or malformed values yield nil.
func dimension(sel *goquery.Selection, attr string) *uint32 {
	v, ok := sel.Attr(attr)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(v, "+"), 10, 32)
	if err != nil {
		return nil
	}
	u := uint32(n)
	return &u
}
