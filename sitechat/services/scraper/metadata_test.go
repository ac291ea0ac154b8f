package scraper

import (
	"net/url"
	"strings"
	"testing"

	"sitechat/sitechat/utils/types"

	"github.com/stretchr/testify/assert"
)

func metadataOf(t *testing.T, html string) *types.StructuredDocument {
	t.Helper()
	base, _ := url.Parse("https://site.example/blog/post")
	doc := parseDoc(t, html)
	out := &types.StructuredDocument{}
	New(DefaultOptions()).extractMetadata(doc, &page{body: html, finalURL: base}, out)
	return out
}

func TestFirstOfOrder(t *testing.T) {
	calls := 0
	counted := func(v string) source {
		return func() string { calls++; return v }
	}
	assert.Equal(t, "b", firstOf(counted(""), counted("b"), counted("c")))
	assert.Equal(t, 2, calls, "later sources are not evaluated")
	assert.Equal(t, "", firstOf())
}

func TestTitleChain(t *testing.T) {
	tests := []struct {
		name, html, want string
	}{
		{"title tag", `<html><head><title> Hello  World </title></head><body><h1>Heading</h1></body></html>`, "Hello World"},
		{"first h1", `<html><head><title></title></head><body><h1>First</h1><h1>Second</h1></body></html>`, "First"},
		{"placeholder", `<html><body><p>text</p></body></html>`, "No title found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metadataOf(t, tt.html).Title)
		})
	}
}

func TestDescriptionChain(t *testing.T) {
	long := strings.Repeat("word ", 100)
	tests := []struct {
		name, html, want string
	}{
		{"meta", `<html><head><meta name="Description" content="From meta"><meta property="og:description" content="From og"></head></html>`, "From meta"},
		{"og", `<html><head><meta property="og:description" content="From og"></head><body><p>para</p></body></html>`, "From og"},
		{"paragraph", `<html><body><p>  </p><p>First real paragraph</p></body></html>`, "First real paragraph"},
		{"truncated paragraph", `<html><body><p>` + long + `</p></body></html>`, strings.TrimSpace(long)[:200]},
		{"placeholder", `<html><body><div>no paragraphs</div></body></html>`, "No description found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metadataOf(t, tt.html).Description)
		})
	}
}

func TestOptionalMetadata(t *testing.T) {
	doc := metadataOf(t, `<html><head>
		<title>T</title>
		<meta name="keywords" content="go, scraping">
		<meta name="author" content="<b>Ada</b> Lovelace">
		<meta property="og:site_name" content="Example Site">
		<meta property="og:title" content="OG Title">
		<meta property="og:image" content="/img/cover.png">
		<link rel="shortcut icon" href="/favicon.ico">
	</head><body></body></html>`)

	assert.Equal(t, "go, scraping", doc.Keywords)
	assert.Equal(t, "Ada Lovelace", doc.Author)
	assert.Equal(t, "Example Site", doc.SiteName)
	assert.Equal(t, "OG Title", doc.OGTitle)
	assert.Equal(t, "https://site.example/img/cover.png", doc.OGImage)
	assert.Equal(t, "https://site.example/favicon.ico", doc.Favicon)
}

func TestOptionalMetadataAbsent(t *testing.T) {
	doc := metadataOf(t, `<html><head><title>T</title></head><body><div>x</div></body></html>`)

	assert.Empty(t, doc.Keywords)
	assert.Empty(t, doc.Author)
	assert.Empty(t, doc.SiteName)
	assert.Empty(t, doc.OGImage)
	assert.Empty(t, doc.Favicon)
}

func TestAuthorFallsBackToArticleAuthor(t *testing.T) {
	doc := metadataOf(t, `<html><head><meta property="article:author" content="Grace Hopper"></head><body></body></html>`)
	assert.Equal(t, "Grace Hopper", doc.Author)
}

func TestResolveRef(t *testing.T) {
	base, _ := url.Parse("https://site.example/a/b")
	assert.Equal(t, "https://site.example/a/c", resolveRef(base, "c"))
	assert.Equal(t, "https://other.example/x", resolveRef(base, "https://other.example/x"))
	assert.Equal(t, "", resolveRef(base, "  "))
	assert.Equal(t, "", resolveRef(base, "http://[::1"))
}
