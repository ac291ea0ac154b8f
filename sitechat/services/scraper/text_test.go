package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"spaces", "a   b\t\tc", "a b c"},
		{"newlines", "a\n\n\n  b\r\n\r\nc", "a\nb\nc"},
		{"nbsp", "a\u00a0 b", "a b"},
		{"trim", "  \n a \n  ", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeWhitespace(tt.in))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "héllo", truncateRunes("héllo", 0))
	assert.Equal(t, "", truncateRunes("", 3))
}

func TestCleanAttr(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", cleanAttr("  <b>Tom</b> &amp; Jerry "))
	assert.Equal(t, "plain", cleanAttr("plain"))
}

func TestBlockTextSeparatesBlocks(t *testing.T) {
	doc := parseDoc(t, `<html><body><div><h2>Title</h2><p>One <em>two</em></p><ul><li>a</li><li>b</li></ul><style>p{}</style></div></body></html>`)
	assert.Equal(t, "Title\nOne two\na\nb", blockText(doc.Find("div")))
}
