// Package etree renders extracted documents as XML.
package etree

import (
	"fmt"
	"io"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/beevik/etree"
	"github.com/fwojciec/exegesis"
)

// Ensure Renderer implements exegesis.Renderer at compile time.
var _ exegesis.Renderer = (*Renderer)(nil)

// Renderer writes documents as a <documents> XML tree. Part elements are
// named after their role.
//
// Output is never indented: whitespace would become part of mixed content.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes docs to w as one XML document.
func (r *Renderer) Render(w io.Writer, docs []*exegesis.Document) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("documents")
	for _, d := range docs {
		appendDocument(root, d)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func appendDocument(parent *etree.Element, d *exegesis.Document) {
	el := parent.CreateElement("document")
	if d.Title != nil {
		appendParts(el.CreateElement(string(exegesis.RoleTitle)), d.Title)
	}
	if d.PublicationDate != nil {
		el.CreateElement(string(exegesis.RolePublicationDate)).SetText(d.PublicationDate.String())
	}
	appendParts(el.CreateElement("content"), d.Content)
}

func appendParts(parent *etree.Element, parts []exegesis.Part) {
	for _, part := range parts {
		appendPart(parent, part)
	}
}

func appendPart(parent *etree.Element, part exegesis.Part) {
	switch p := part.(type) {
	case exegesis.Text:
		parent.CreateText(string(p))
	case exegesis.Paragraph:
		appendParts(parent.CreateElement(string(exegesis.RoleParagraph)), p)
	case exegesis.Header1:
		appendParts(parent.CreateElement(string(exegesis.RoleHeader1)), p)
	case exegesis.Header2:
		appendParts(parent.CreateElement(string(exegesis.RoleHeader2)), p)
	case exegesis.Header3:
		appendParts(parent.CreateElement(string(exegesis.RoleHeader3)), p)
	case exegesis.Emphasis:
		appendParts(parent.CreateElement(string(exegesis.RoleEmphasis)), p)
	case exegesis.List:
		appendParts(parent.CreateElement(string(exegesis.RoleList)), p)
	case exegesis.ListItem:
		appendParts(parent.CreateElement(string(exegesis.RoleListItem)), p)
	case exegesis.Link:
		el := parent.CreateElement(string(exegesis.RoleLink))
		el.CreateAttr("url", p.URL)
		appendParts(el, p.Content)
	case exegesis.Image:
		el := parent.CreateElement(string(exegesis.RoleImage))
		el.CreateAttr("url", p.URL)
		if p.Width != nil {
			el.CreateAttr("width", strconv.FormatUint(uint64(*p.Width), 10))
		}
		if p.Height != nil {
			el.CreateAttr("height", strconv.FormatUint(uint64(*p.Height), 10))
		}
		if p.Legend != nil {
			el.CreateAttr("legend", *p.Legend)
		}
	case exegesis.Date:
		parent.CreateElement(string(exegesis.RoleDate)).SetText(civil.Date(p).String())
	}
}
