package scraper

import (
	"github.com/PuerkitoBio/goquery"
)

// ContainerMatcher proposes the element holding a page's main text. Match
// returns nil or an empty selection when the page has no such element.
type ContainerMatcher struct {
	Name  string
	Match func(doc *goquery.Document) *goquery.Selection
}

// SelectorMatcher matches the first element selected by sel.
func SelectorMatcher(sel string) ContainerMatcher {
	return ContainerMatcher{
		Name: sel,
		Match: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(sel).First()
		},
	}
}

func SelectorMatchers(selectors []string) []ContainerMatcher {
	out := make([]ContainerMatcher, 0, len(selectors))
	for _, sel := range selectors {
		out = append(out, SelectorMatcher(sel))
	}
	return out
}

// firstContainerText returns the text of the first matcher whose selection
// has non-empty text.
func firstContainerText(doc *goquery.Document, matchers []ContainerMatcher) (string, bool) {
	for _, m := range matchers {
		sel := m.Match(doc)
		if sel == nil || sel.Length() == 0 {
			continue
		}
		if text := blockText(sel); text != "" {
			return text, true
		}
	}
	return "", false
}

// strippedBodyText removes noise regions from a copy of the page and returns
// the remaining body text. doc is left untouched.
func strippedBodyText(doc *goquery.Document, noise []string) string {
	root := doc.Selection.Clone()
	for _, sel := range noise {
		root.Find(sel).Remove()
	}
	body := root.Find("body")
	if body.Length() == 0 {
		body = root
	}
	return blockText(body)
}

// mainText picks the main text container, falling back to the stripped body.
func (s *Scraper) mainText(doc *goquery.Document) string {
	text, ok := firstContainerText(doc, s.matchers)
	if !ok {
		text = strippedBodyText(doc, s.opts.NoiseSelectors)
	}
	return truncateRunes(text, s.opts.MaxTextChars)
}
