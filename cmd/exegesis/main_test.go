package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/exegesis"
	main "github.com/fwojciec/exegesis/cmd/exegesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postHTML = `<!DOCTYPE html><html><head><title>ignored</title></head><body>` +
	`<nav><a href="/">Home</a></nav>` +
	`<article><h1>Hello</h1><p class="date">2017-03-01</p><p>Body <em>text</em></p></article>` +
	`</body></html>`

// newServer serves postHTML at /post and 404 everywhere else.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/post" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, postHTML)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeRules writes a rules file for the server into a temp directory.
func writeRules(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	rules := fmt.Sprintf(`
[rules.blog]
include_url = %q
root = "article"
date_format = "%%Y-%%m-%%d"
title = "h1"
publication-date = "p.date"
paragraph = "p:not(.date)"
emphasis = "em"
`, srv.URL+"/**")

	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(rules), 0o644))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	m := main.NewMain()
	err = m.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns error without a command", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "extract")
		assert.Contains(t, stdout, "match")
		assert.Contains(t, stdout, "history")
	})

	t.Run("extracts documents as json", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		stdout, stderr, err := run(t, "extract", "-r", rules, srv.URL+"/post")

		require.NoError(t, err, stderr)
		var docs []*exegesis.Document
		require.NoError(t, json.Unmarshal([]byte(stdout), &docs))
		require.Len(t, docs, 1)
		date := civil.Date{Year: 2017, Month: 3, Day: 1}
		assert.Equal(t, &exegesis.Document{
			Title:           []exegesis.Part{exegesis.Text("Hello")},
			PublicationDate: &date,
			Content: []exegesis.Part{
				exegesis.Paragraph{exegesis.Text("Body "), exegesis.Emphasis{exegesis.Text("text")}},
			},
		}, docs[0])
	})

	t.Run("renders other formats", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		for format, want := range map[string]string{
			"html":     "<h2>Hello</h2>",
			"markdown": "## Hello",
			"xml":      "<documents>",
		} {
			stdout, stderr, err := run(t, "extract", "--format", format, "-r", rules, srv.URL+"/post")
			require.NoError(t, err, stderr)
			assert.Contains(t, stdout, want, format)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		_, _, err := run(t, "extract", "--format", "pdf", "-r", rules, srv.URL+"/post")

		require.Error(t, err)
	})

	t.Run("reports failed URLs and still prints the rest", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		stdout, stderr, err := run(t, "extract", "-r", rules, srv.URL+"/post", srv.URL+"/missing")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 URLs failed")
		assert.Contains(t, stderr, "HTTP 404")
		assert.Contains(t, stdout, "Hello")
	})

	t.Run("suggests a fallback when no rule matches", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(rules, []byte("rules:\n  other:\n    include_url: https://other.example/**\n    paragraph: p\n"), 0o644))

		_, stderr, err := run(t, "extract", "-r", rules, srv.URL+"/post")

		require.Error(t, err)
		assert.Contains(t, stderr, "--fallback")
	})

	t.Run("extracts with a fallback when no rule matches", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(rules, []byte("rules:\n  other:\n    include_url: https://other.example/**\n    paragraph: p\n"), 0o644))

		stdout, stderr, err := run(t, "extract", "--fallback", "readability", "-r", rules, srv.URL+"/post")

		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "Body")
	})

	t.Run("prefers rules from earlier files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := filepath.Join(dir, "first.yaml")
		second := filepath.Join(dir, "second.toml")
		require.NoError(t, os.WriteFile(first, []byte("rules:\n  specific:\n    include_url: https://example.com/blog/*\n    paragraph: p\n"), 0o644))
		require.NoError(t, os.WriteFile(second, []byte("[rules.catchall]\ninclude_url = \"https://example.com/**\"\nparagraph = \"p\"\n"), 0o644))

		stdout, _, err := run(t, "match", "-r", first, "-r", second, "https://example.com/blog/post", "https://example.com/about")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/blog/post\tspecific\nhttps://example.com/about\tcatchall\n", stdout)
	})

	t.Run("names the rules file with an invalid rule", func(t *testing.T) {
		t.Parallel()

		rules := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(rules, []byte("rules:\n  bad:\n    include_url: https://example.com/**\n    paragraph: \"p[\"\n"), 0o644))

		_, _, err := run(t, "match", "-r", rules, "https://example.com")

		require.Error(t, err)
		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
		assert.Contains(t, err.Error(), "broken.yaml")
	})

	t.Run("rejects unsupported rules files", func(t *testing.T) {
		t.Parallel()

		rules := filepath.Join(t.TempDir(), "rules.json")
		require.NoError(t, os.WriteFile(rules, []byte("{}"), 0o644))

		_, _, err := run(t, "extract", "-r", rules, "https://example.com")

		require.Error(t, err)
		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
	})

	t.Run("logs fetches in verbose mode", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		_, stderr, err := run(t, "extract", "--verbose", "-r", rules, srv.URL+"/post")

		require.NoError(t, err)
		assert.Contains(t, stderr, "msg=fetch")
		assert.Contains(t, stderr, "msg=extract")
		assert.Contains(t, stderr, "duration=")
	})

	t.Run("stays quiet without verbose mode", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		_, stderr, err := run(t, "extract", "-r", rules, srv.URL+"/post")

		require.NoError(t, err)
		assert.Empty(t, stderr)
	})

	t.Run("writes one file per URL with --out", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)
		out := t.TempDir()

		stdout, stderr, err := run(t, "extract", "--format", "markdown", "--out", out, "-r", rules, srv.URL+"/post")

		require.NoError(t, err, stderr)
		u, err := url.Parse(srv.URL)
		require.NoError(t, err)
		path := filepath.Join(out, u.Host, "post.md")
		assert.Equal(t, path+"\n", stdout)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "title: Hello")
		assert.Contains(t, string(data), "## Hello")
	})

	t.Run("matches URLs against rules", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)

		stdout, _, err := run(t, "match", "-r", rules, srv.URL+"/post", "https://other.example/")

		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/post\tblog\nhttps://other.example/\t(no rule)\n", stdout)
	})

	t.Run("saves extractions and lists history", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		rules := writeRules(t, srv)
		db := filepath.Join(t.TempDir(), "history", "exegesis.db")

		_, stderr, err := run(t, "extract", "--save", "--db", db, "-r", rules, srv.URL+"/post")
		require.NoError(t, err, stderr)

		stdout, _, err := run(t, "history", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, stdout, srv.URL+"/post#0")
		assert.Contains(t, stdout, "blog")
		assert.Contains(t, stdout, "Hello")

		stdout, _, err = run(t, "history", "--db", db, "--full", srv.URL+"/post")
		require.NoError(t, err)
		var docs []*exegesis.Document
		require.NoError(t, json.Unmarshal([]byte(stdout), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "Hello", exegesis.TextOf(docs[0].Title))

		_, _, err = run(t, "history", "--db", db, "--clear", srv.URL+"/post")
		require.NoError(t, err)

		stdout, _, err = run(t, "history", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, stdout, "No extractions found")
	})
}
