package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sitechat/sitechat/utils/logging"
	"sitechat/sitechat/utils/types"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Scraper turns a URL into a bounded StructuredDocument with one outbound
// request. It holds no per-request state and is safe for concurrent use.
type Scraper struct {
	opts     Options
	client   *http.Client
	matchers []ContainerMatcher
	now      func() time.Time
}

type Option func(*Scraper)

// WithHTTPClient replaces the default client. The per-request timeout still
// comes from Options.Timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

func New(opts Options, options ...Option) *Scraper {
	opts = opts.withDefaults()
	s := &Scraper{
		opts:     opts,
		client:   &http.Client{},
		matchers: SelectorMatchers(opts.ContentSelectors),
		now:      time.Now,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Options returns the effective extraction policy.
func (s *Scraper) Options() Options { return s.opts }

// Extract fetches rawURL and builds its StructuredDocument. Either a complete
// document or a *Error is returned, never both; caller cancellation is
// returned as the context error.
func (s *Scraper) Extract(ctx context.Context, rawURL string) (*types.StructuredDocument, error) {
	defer logging.LogDuration(ctx, "Scraper.Extract")()

	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	pg, err := s.fetch(ctx, target)
	if err != nil {
		logging.AppLogger.Warn("extraction failed",
			zap.String("url", target.String()),
			zap.String("trace_id", logging.TraceID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	doc, err := parseDocument(strings.NewReader(pg.body), target)
	if err != nil {
		return nil, err
	}
	doc.Url = pg.finalURL

	out := &types.StructuredDocument{
		URL:       target.String(),
		Domain:    target.Hostname(),
		ScrapedAt: s.now().UTC(),
	}
	s.extractMetadata(doc, pg, out)
	out.MainText = s.mainText(doc)
	out.Headings = s.headings(doc)
	out.Navigation = s.navigation(doc, pg.finalURL)
	out.Images = s.images(doc, pg.finalURL)
	out.WordCount = len(strings.Fields(out.MainText))
	out.Status = types.StatusSuccess

	logging.AppLogger.Info("extraction succeeded",
		zap.String("url", out.URL),
		zap.String("trace_id", logging.TraceID(ctx)),
		zap.Int("words", out.WordCount),
		zap.Int("headings", len(out.Headings)),
	)
	return out, nil
}

// parseDocument builds the goquery tree for a fetched body. The HTML parser
// tolerates malformed markup, so only a failing reader ends up here.
func parseDocument(r io.Reader, target *url.URL) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, newError(KindParseFailure, err, "failed to parse %s", target)
	}
	return doc, nil
}
