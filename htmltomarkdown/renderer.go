// Package htmltomarkdown renders extracted documents as Markdown.
package htmltomarkdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/exegesis"
)

// Ensure Renderer implements exegesis.Renderer at compile time.
var _ exegesis.Renderer = (*Renderer)(nil)

// Renderer converts the output of an HTML renderer to Markdown, one
// document at a time.
type Renderer struct {
	html exegesis.Renderer
	conv *converter.Converter
}

// NewRenderer creates a Renderer that converts the markup written by html.
func NewRenderer(html exegesis.Renderer) *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Renderer{html: html, conv: conv}
}

// Render writes docs to w as Markdown. Documents are separated by a
// thematic break.
func (r *Renderer) Render(w io.Writer, docs []*exegesis.Document) error {
	written := false
	for _, doc := range docs {
		var buf bytes.Buffer
		if err := r.html.Render(&buf, []*exegesis.Document{doc}); err != nil {
			return err
		}
		md, err := r.Convert(buf.String())
		if err != nil {
			if exegesis.ErrorCode(err) == exegesis.EINVALID {
				continue
			}
			return err
		}
		if md == "" {
			continue
		}
		if written {
			if _, err := io.WriteString(w, "\n* * *\n\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, md+"\n"); err != nil {
			return err
		}
		written = true
	}
	return nil
}

// Convert transforms HTML content into Markdown.
func (r *Renderer) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", exegesis.Errorf(exegesis.EINVALID, "empty HTML input")
	}

	result, err := r.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
