package scraper

import (
	"context"
	"errors"
	"time"

	"sitechat/sitechat/utils/types"

	"golang.org/x/sync/errgroup"
)

// Client-facing messages for failures that carry no *Error.
const (
	msgCancelled = "Extraction was cancelled"
	msgFailed    = "Extraction failed"
)

// Result is the outcome of one extraction in a batch.
type Result struct {
	URL      string                    `json:"url"`
	Document *types.StructuredDocument `json:"document,omitempty"`
	Error    string                    `json:"error,omitempty"`
	Err      error                     `json:"-"`
	Elapsed  time.Duration             `json:"-"`
}

// ExtractMany runs independent extractions with at most maxConcurrent in
// flight. Results keep the order of urls; a failed URL does not stop the
// others.
func (s *Scraper) ExtractMany(ctx context.Context, urls []string, maxConcurrent int) []Result {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, u := range urls {
		g.Go(func() error {
			start := time.Now()
			doc, err := s.Extract(gctx, u)
			results[i] = Result{URL: u, Document: doc, Err: err, Elapsed: time.Since(start)}
			var e *Error
			switch {
			case errors.As(err, &e):
				results[i].Error = e.Message
			case errors.Is(err, context.Canceled):
				results[i].Error = msgCancelled
			case err != nil:
				results[i].Error = msgFailed
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
