package readability_test

import (
	"testing"

	"github.com/fwojciec/exegesis"
	"github.com/fwojciec/exegesis/goquery"
	"github.com/fwojciec/exegesis/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements exegesis.WebsiteExtractor at compile time.
var _ exegesis.WebsiteExtractor = (*readability.Extractor)(nil)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h2>Release notes</h2>
<p>This release brings a faster parser, better error messages and a long list of smaller fixes.</p>
<p>Upgrading is straightforward: replace the binary and restart the service, nothing else changes.</p>
<p>Thanks to everyone who reported issues and sent patches during this cycle, it made a difference.</p>
</article>
</body>
</html>`

func newWebsite(t *testing.T, url, markup string) *exegesis.Website {
	t.Helper()

	w, err := goquery.NewWebsite(url, markup)
	require.NoError(t, err)
	return w
}

func TestExtractor_ExtractWebsite(t *testing.T) {
	t.Parallel()

	t.Run("extracts the article as parts", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor(goquery.NewGenericExtractor())

		docs, err := ext.ExtractWebsite(newWebsite(t, "https://example.com/news", articleHTML), exegesis.DiscardErrors)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		text := exegesis.TextOf(docs[0].Content)
		assert.Contains(t, text, "faster parser")
		assert.NotContains(t, text, "Home")
	})

	t.Run("takes the title from the page", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor(goquery.NewGenericExtractor())

		docs, err := ext.ExtractWebsite(newWebsite(t, "https://example.com/news", articleHTML), exegesis.DiscardErrors)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Page Title", exegesis.NormalizedText(docs[0].Title))
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor(goquery.NewGenericExtractor())

		_, err := ext.ExtractWebsite(newWebsite(t, "http://[::1", articleHTML), exegesis.DiscardErrors)

		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
	})

	t.Run("fails for websites without a document", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor(goquery.NewGenericExtractor())

		_, err := ext.ExtractWebsite(&exegesis.Website{URL: "https://example.com"}, exegesis.DiscardErrors)

		assert.Equal(t, exegesis.ENODOCUMENT, exegesis.ErrorCode(err))
	})
}
