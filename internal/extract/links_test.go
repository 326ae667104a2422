package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks(t *testing.T) {
	markup := `
	<html><body>
		<a href="/docs/Report A.PDF">Report A</a>
		<a href="https://cdn.example.com/sheets/msds.pdf">MSDS</a>
		<a href="/about.html">About</a>
		<a href="/docs/dupe.pdf">first</a>
		<a href="/docs/dupe.pdf">second</a>
		<a name="anchor-without-href">skip me</a>
		<a href="/docs/versioned.pdf?rev=3">versioned</a>
	</body></html>`

	links := Links(markup, ".pdf")

	assert.Equal(t, []string{
		"/docs/Report A.PDF",
		"https://cdn.example.com/sheets/msds.pdf",
		"/docs/dupe.pdf",
		"/docs/dupe.pdf",
		"/docs/versioned.pdf?rev=3",
	}, links)
}

func TestLinksEmptyInput(t *testing.T) {
	assert.Empty(t, Links("", ".pdf"))
	assert.Empty(t, Links("   \n ", ".pdf"))
	assert.Empty(t, Links("<html><body>no anchors</body></html>", ".pdf"))
}

func TestLinksCaseInsensitiveSuffix(t *testing.T) {
	markup := `<a href="/A.PDF">a</a><a href="/b.Pdf">b</a><a href="/c.pdfx">c</a>`
	links := Links(markup, ".pdf")
	assert.Equal(t, []string{"/A.PDF", "/b.Pdf"}, links)
}

func TestResolve(t *testing.T) {
	assert.Equal(t,
		"https://example.com/docs/a.pdf",
		Resolve("https://example.com/listing", "/docs/a.pdf"))
	assert.Equal(t,
		"https://cdn.example.com/x.pdf",
		Resolve("https://example.com/listing", "https://cdn.example.com/x.pdf"))
}
