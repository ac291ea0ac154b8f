// sitechat/utils/types/scrape.go
package types

import (
	"time"
)

// StatusSuccess tags a fully extracted document.
const StatusSuccess = "success"

type ScrapeRequest struct {
	URL string `json:"url"`
}

// StructuredDocument is the bounded result of extracting one page. It is
// built once per successful extraction and never mutated afterwards.
type StructuredDocument struct {
	URL         string `json:"url"`
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	Author      string `json:"author"`
	SiteName    string `json:"siteName"`
	Domain      string `json:"domain,omitempty"`
	OGTitle     string `json:"ogTitle,omitempty"`
	OGImage     string `json:"ogImage,omitempty"`
	Favicon     string `json:"favicon,omitempty"`

	MainText   string    `json:"mainText"`
	Headings   []Heading `json:"headings"`
	Navigation []NavLink `json:"navigation"`
	Images     []Image   `json:"images"`
	WordCount  int       `json:"wordCount"`
	ScrapedAt  time.Time `json:"scrapedAt"`
}

type Heading struct {
	Level string `json:"level"` // "h1".."h6"
	Text  string `json:"text"`
}

type NavLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Succeeded reports whether d carries a successfully extracted page.
func (d *StructuredDocument) Succeeded() bool {
	return d != nil && d.Status == StatusSuccess
}

type ScrapeBatchRequest struct {
	URLs []string `json:"urls"`
}

// ScrapeResult is one entry of a batch; exactly one of Document and Error
// is set.
type ScrapeResult struct {
	URL      string              `json:"url"`
	Document *StructuredDocument `json:"document,omitempty"`
	Error    string              `json:"error,omitempty"`
}

type ScrapeBatchResponse struct {
	Results []ScrapeResult `json:"results"`
}
