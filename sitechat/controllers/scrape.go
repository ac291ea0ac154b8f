// sitechat/controllers/scrape.go
package controllers

import (
	"context"
	"errors"
	"time"

	"sitechat/sitechat/services/responder"
	"sitechat/sitechat/services/scraper"
	"sitechat/sitechat/utils/metrics"
	"sitechat/sitechat/utils/types"
)

// MaxBatchURLs bounds one batch extraction request.
const MaxBatchURLs = 10

// Extractor is the part of *scraper.Scraper the controllers use.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*types.StructuredDocument, error)
	ExtractMany(ctx context.Context, urls []string, maxConcurrent int) []scraper.Result
}

// ScrapeController turns URLs into StructuredDocuments
type ScrapeController struct {
	extractor Extractor
	parallel  int
}

func NewScrapeController(extractor Extractor, parallel int) *ScrapeController {
	return &ScrapeController{extractor: extractor, parallel: parallel}
}

// Scrape extracts a single page.
func (c *ScrapeController) Scrape(ctx context.Context, req types.ScrapeRequest) (*types.StructuredDocument, error) {
	start := time.Now()
	doc, err := c.extractor.Extract(ctx, req.URL)
	metrics.RecordExtraction(outcome(err), time.Since(start).Seconds())
	return doc, err
}

// ScrapeBatch extracts up to MaxBatchURLs pages independently; one failed
// URL does not fail the batch.
func (c *ScrapeController) ScrapeBatch(ctx context.Context, req types.ScrapeBatchRequest) (*types.ScrapeBatchResponse, error) {
	results := c.extractor.ExtractMany(ctx, req.URLs, c.parallel)

	resp := &types.ScrapeBatchResponse{Results: make([]types.ScrapeResult, 0, len(results))}
	for _, res := range results {
		metrics.RecordExtraction(outcome(res.Err), res.Elapsed.Seconds())
		resp.Results = append(resp.Results, types.ScrapeResult{
			URL:      res.URL,
			Document: res.Document,
			Error:    res.Error,
		})
	}
	return resp, nil
}

// outcome labels a result for metrics: "success", an error kind, or a
// generic bucket.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var se *scraper.Error
	if errors.As(err, &se) {
		return string(se.Kind)
	}
	var re *responder.Error
	if errors.As(err, &re) {
		return string(re.Kind)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "error"
}
