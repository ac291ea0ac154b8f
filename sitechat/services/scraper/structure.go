package scraper

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"sitechat/sitechat/utils/types"

	"github.com/PuerkitoBio/goquery"
)

// headings returns h1..h6 in document order. Entries longer than
// MaxHeadingChars are dropped, not truncated.
func (s *Scraper) headings(doc *goquery.Document) []types.Heading {
	out := make([]types.Heading, 0)
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := singleLine(h.Text())
		if text == "" || utf8.RuneCountInString(text) > s.opts.MaxHeadingChars {
			return true
		}
		out = append(out, types.Heading{Level: goquery.NodeName(h), Text: text})
		return len(out) < s.opts.MaxHeadings
	})
	return out
}

// navigation collects links inside link-like regions. Nested regions are
// deduplicated by resolved href.
func (s *Scraper) navigation(doc *goquery.Document, base *url.URL) []types.NavLink {
	out := make([]types.NavLink, 0)
	if len(s.opts.NavigationSelectors) == 0 {
		return out
	}
	seen := map[string]bool{}
	regions := doc.Find(strings.Join(s.opts.NavigationSelectors, ", "))
	regions.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := singleLine(a.Text())
		if text == "" || utf8.RuneCountInString(text) >= s.opts.MaxNavTextChars {
			return true
		}
		raw := strings.TrimSpace(a.AttrOr("href", ""))
		if raw == "" || strings.HasPrefix(strings.ToLower(raw), "javascript:") {
			return true
		}
		href := resolveRef(base, raw)
		if href == "" || seen[href] {
			return true
		}
		seen[href] = true
		out = append(out, types.NavLink{Text: text, Href: href})
		return len(out) < s.opts.MaxNavigation
	})
	return out
}

// images returns <img> sources resolved against base. Lazy-loaded images
// fall back to data-src.
func (s *Scraper) images(doc *goquery.Document, base *url.URL) []types.Image {
	out := make([]types.Image, 0)
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		raw := strings.TrimSpace(img.AttrOr("src", ""))
		if raw == "" || strings.HasPrefix(raw, "data:") {
			if ds := strings.TrimSpace(img.AttrOr("data-src", "")); ds != "" {
				raw = ds
			}
		}
		if raw == "" {
			return true
		}
		src := resolveRef(base, raw)
		if src == "" {
			return true
		}
		out = append(out, types.Image{Src: src, Alt: cleanAttr(img.AttrOr("alt", ""))})
		return len(out) < s.opts.MaxImages
	})
	return out
}
