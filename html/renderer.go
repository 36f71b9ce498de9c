// Package html renders extracted documents as HTML fragments.
package html

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/exegesis"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// datetimeLayout is used for the datetime attribute of time elements.
const datetimeLayout = "2006-01-02T15:04:05-07:00"

// Ensure Renderer implements exegesis.Renderer at compile time.
var _ exegesis.Renderer = (*Renderer)(nil)

// Renderer writes each document as an <article> element. Headers are shifted
// down one level so that h1 stays free for the embedding page.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes docs to w, one article per document.
func (r *Renderer) Render(w io.Writer, docs []*exegesis.Document) error {
	bw := bufio.NewWriter(w)
	for _, doc := range docs {
		if err := html.Render(bw, Article(doc)); err != nil {
			return fmt.Errorf("render article: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// RenderString renders docs and returns the markup.
func (r *Renderer) RenderString(docs []*exegesis.Document) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, docs); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Article builds the element tree for doc.
func Article(doc *exegesis.Document) *html.Node {
	article := element(atom.Article)

	if doc.Title != nil || doc.PublicationDate != nil {
		header := element(atom.Header)
		if doc.Title != nil {
			appendBlock(header, container(atom.H2, doc.Title))
		}
		if doc.PublicationDate != nil {
			p := element(atom.P)
			p.AppendChild(text("On "))
			p.AppendChild(timeElement(*doc.PublicationDate))
			appendBlock(header, p)
		}
		appendBlock(article, header)
	}

	appendParts(article, doc.Content)
	return article
}

func appendParts(parent *html.Node, parts []exegesis.Part) {
	for _, part := range parts {
		appendPart(parent, part)
	}
}

func appendPart(parent *html.Node, part exegesis.Part) {
	switch p := part.(type) {
	case exegesis.Text:
		parent.AppendChild(text(string(p)))
	case exegesis.Paragraph:
		appendBlock(parent, container(atom.P, p))
	case exegesis.Header1:
		appendBlock(parent, container(atom.H2, p))
	case exegesis.Header2:
		appendBlock(parent, container(atom.H3, p))
	case exegesis.Header3:
		appendBlock(parent, container(atom.H4, p))
	case exegesis.Emphasis:
		parent.AppendChild(container(atom.Em, p))
	case exegesis.List:
		appendBlock(parent, container(atom.Ul, p))
	case exegesis.ListItem:
		appendBlock(parent, container(atom.Li, p))
	case exegesis.Link:
		a := container(atom.A, p.Content)
		a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: p.URL})
		parent.AppendChild(a)
	case exegesis.Image:
		img := element(atom.Img)
		img.Attr = append(img.Attr, html.Attribute{Key: "src", Val: p.URL})
		if p.Width != nil {
			img.Attr = append(img.Attr, html.Attribute{Key: "width", Val: strconv.FormatUint(uint64(*p.Width), 10)})
		}
		if p.Height != nil {
			img.Attr = append(img.Attr, html.Attribute{Key: "height", Val: strconv.FormatUint(uint64(*p.Height), 10)})
		}
		if p.Legend != nil {
			img.Attr = append(img.Attr, html.Attribute{Key: "title", Val: *p.Legend})
		}
		parent.AppendChild(img)
	case exegesis.Date:
		parent.AppendChild(timeElement(civil.Date(p)))
	}
}

func timeElement(d civil.Date) *html.Node {
	n := element(atom.Time)
	n.Attr = append(n.Attr, html.Attribute{Key: "datetime", Val: d.In(time.UTC).Format(datetimeLayout)})
	n.AppendChild(text(d.String()))
	return n
}

// appendBlock appends a block element followed by a line break.
func appendBlock(parent, child *html.Node) {
	parent.AppendChild(child)
	parent.AppendChild(text("\n"))
}

func container(a atom.Atom, children []exegesis.Part) *html.Node {
	n := element(a)
	appendParts(n, children)
	return n
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
