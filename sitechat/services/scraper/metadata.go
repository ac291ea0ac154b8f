package scraper

import (
	"net/url"
	"strings"
	"sync"

	"sitechat/sitechat/utils/logging"
	"sitechat/sitechat/utils/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

const (
	noTitle       = "No title found"
	noDescription = "No description found"
)

// source yields one candidate value for a metadata field.
type source func() string

// firstOf returns the first non-empty candidate, trying them in order.
func firstOf(sources ...source) string {
	for _, src := range sources {
		if v := src(); v != "" {
			return v
		}
	}
	return ""
}

func constant(v string) source { return func() string { return v } }

// metaTags indexes <meta> content by lowercased name and property. The first
// tag for a key wins.
type metaTags map[string]string

func collectMeta(doc *goquery.Document) metaTags {
	tags := metaTags{}
	doc.Find("meta[content]").Each(func(_ int, m *goquery.Selection) {
		content := cleanAttr(m.AttrOr("content", ""))
		if content == "" {
			return
		}
		for _, attr := range []string{"name", "property"} {
			key := strings.ToLower(strings.TrimSpace(m.AttrOr(attr, "")))
			if key == "" {
				continue
			}
			if _, ok := tags[key]; !ok {
				tags[key] = content
			}
		}
	})
	return tags
}

func (t metaTags) get(key string) source {
	return func() string { return t[key] }
}

func firstText(doc *goquery.Document, sel string) source {
	return func() string { return singleLine(doc.Find(sel).First().Text()) }
}

// firstParagraph returns the first <p> with text, truncated to max.
func firstParagraph(doc *goquery.Document, max int) source {
	return func() string {
		var text string
		doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text = singleLine(p.Text())
			return text == ""
		})
		return truncateRunes(text, max)
	}
}

// lazyArticle runs the readability analysis at most once, and only when a
// chain reaches it.
type lazyArticle struct {
	once    sync.Once
	body    string
	pageURL *url.URL
	article readability.Article
	ok      bool
}

func (l *lazyArticle) get() (readability.Article, bool) {
	l.once.Do(func() {
		p := readability.NewParser()
		a, err := p.Parse(strings.NewReader(l.body), l.pageURL)
		if err != nil {
			logging.AppLogger.Debug("readability analysis failed",
				zap.String("url", l.pageURL.String()), zap.Error(err))
			return
		}
		l.article, l.ok = a, true
	})
	return l.article, l.ok
}

func (l *lazyArticle) byline() source {
	return func() string {
		a, ok := l.get()
		if !ok {
			return ""
		}
		return cleanAttr(a.Byline)
	}
}

func (l *lazyArticle) siteName() source {
	return func() string {
		a, ok := l.get()
		if !ok {
			return ""
		}
		return cleanAttr(a.SiteName)
	}
}

// resolveRef makes ref absolute against base. Empty and unparsable refs
// yield "".
func resolveRef(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

func (s *Scraper) extractMetadata(doc *goquery.Document, pg *page, out *types.StructuredDocument) {
	meta := collectMeta(doc)
	article := &lazyArticle{body: pg.body, pageURL: pg.finalURL}

	out.Title = firstOf(
		firstText(doc, "title"),
		firstText(doc, "h1"),
		constant(noTitle),
	)
	out.Description = firstOf(
		meta.get("description"),
		meta.get("og:description"),
		firstParagraph(doc, s.opts.MaxDescriptionChars),
		constant(noDescription),
	)
	out.Keywords = meta.get("keywords")()
	out.Author = firstOf(
		meta.get("author"),
		meta.get("article:author"),
		article.byline(),
	)
	out.SiteName = firstOf(
		meta.get("og:site_name"),
		meta.get("application-name"),
		article.siteName(),
	)
	out.OGTitle = meta.get("og:title")()
	out.OGImage = resolveRef(pg.finalURL, meta["og:image"])

	// rel~=icon also covers "shortcut icon"
	out.Favicon = resolveRef(pg.finalURL, doc.Find("link[rel~='icon'][href]").First().AttrOr("href", ""))
}
