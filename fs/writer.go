// Package fs writes rendered extractions to a directory tree.
package fs

import (
	"bytes"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/exegesis"
)

// URLToPath converts a page URL to a relative file path under its host.
// Example: https://example.com/docs/api/users, ".md" → example.com/docs/api/users.md
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", exegesis.Errorf(exegesis.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", exegesis.Errorf(exegesis.EINVALID, "URL %q has no host", rawURL)
	}

	p := u.Path

	// Handle root or trailing slash → index
	if p == "" || p == "/" {
		return path.Join(u.Host, "index"+ext), nil
	}

	trailing := strings.HasSuffix(p, "/")
	p = path.Clean("/" + p)
	if trailing || p == "/" {
		return path.Join(u.Host, p, "index"+ext), nil
	}

	return path.Join(u.Host, p) + ext, nil
}

// FormatFrontmatter returns a YAML frontmatter block naming the source URL
// and the title of the first document.
func FormatFrontmatter(sourceURL string, docs []*exegesis.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(sourceURL)
	if len(docs) > 0 {
		if title := exegesis.NormalizedText(docs[0].Title); title != "" {
			b.WriteString("\ntitle: ")
			b.WriteString(quoteYAML(title))
		}
		if d := docs[0].PublicationDate; d != nil {
			b.WriteString("\npublished: ")
			b.WriteString(d.String())
		}
	}
	b.WriteString("\n---\n\n")
	return b.String()
}

// quoteYAML quotes s when it could be misread as YAML syntax.
func quoteYAML(s string) string {
	if strings.ContainsAny(s, ":#'\"[]{}&*!|>%@`") {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return s
}

// Writer writes the documents of each URL to one file in a directory.
type Writer struct {
	baseDir     string
	ext         string
	renderer    exegesis.Renderer
	frontmatter bool
}

// NewWriter creates a new Writer that renders into baseDir. Files get the
// extension ext; Markdown files are prefixed with frontmatter.
func NewWriter(baseDir, ext string, renderer exegesis.Renderer) *Writer {
	return &Writer{
		baseDir:     baseDir,
		ext:         ext,
		renderer:    renderer,
		frontmatter: ext == ".md",
	}
}

// WriteDocuments renders docs to the file for sourceURL and returns its path.
func (w *Writer) WriteDocuments(sourceURL string, docs []*exegesis.Document) (string, error) {
	relPath, err := URLToPath(sourceURL, w.ext)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if w.frontmatter {
		buf.WriteString(FormatFrontmatter(sourceURL, docs))
	}
	if err := w.renderer.Render(&buf, docs); err != nil {
		return "", err
	}

	return fullPath, os.WriteFile(fullPath, buf.Bytes(), 0644)
}
