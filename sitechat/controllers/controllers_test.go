package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"sitechat/sitechat/services/responder"
	"sitechat/sitechat/services/scraper"
	"sitechat/sitechat/utils/metrics"
	"sitechat/sitechat/utils/types"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started by the opencensus stats worker pulled in through genai
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type fakeExtractor struct {
	doc      *types.StructuredDocument
	err      error
	results  []scraper.Result
	parallel int
}

func (f *fakeExtractor) Extract(ctx context.Context, rawURL string) (*types.StructuredDocument, error) {
	return f.doc, f.err
}

func (f *fakeExtractor) ExtractMany(ctx context.Context, urls []string, maxConcurrent int) []scraper.Result {
	f.parallel = maxConcurrent
	return f.results
}

type fakeAnswerer struct {
	reply  string
	err    error
	chunks []string
}

func (f *fakeAnswerer) Respond(ctx context.Context, message string, doc *types.StructuredDocument, history []types.ConversationTurn) (string, error) {
	return f.reply, f.err
}

func (f *fakeAnswerer) RespondStream(ctx context.Context, message string, doc *types.StructuredDocument, history []types.ConversationTurn) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		defer close(ch)
		for _, c := range f.chunks {
			select {
			case ch <- c:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		if f.err != nil {
			errCh <- f.err
		}
	}()
	return ch, errCh
}

func TestScrapeRecordsOutcome(t *testing.T) {
	notHTML := metrics.ExtractionsTotal.WithLabelValues(string(scraper.KindNotHTML))
	before := testutil.ToFloat64(notHTML)

	ctrl := NewScrapeController(&fakeExtractor{err: &scraper.Error{Kind: scraper.KindNotHTML, Message: "nope"}}, 2)
	_, err := ctrl.Scrape(context.Background(), types.ScrapeRequest{URL: "https://x.example"})

	assert.ErrorIs(t, err, scraper.ErrNotHTML)
	assert.Equal(t, before+1, testutil.ToFloat64(notHTML))
}

func TestScrapeReturnsDocument(t *testing.T) {
	doc := &types.StructuredDocument{URL: "https://x.example/", Status: types.StatusSuccess, Title: "X"}
	got, err := NewScrapeController(&fakeExtractor{doc: doc}, 2).Scrape(context.Background(), types.ScrapeRequest{URL: "x.example"})

	require.NoError(t, err)
	assert.Same(t, doc, got)
}

func TestScrapeBatch(t *testing.T) {
	fe := &fakeExtractor{results: []scraper.Result{
		{URL: "https://a.example", Document: &types.StructuredDocument{Title: "A"}, Elapsed: time.Millisecond},
		{URL: "https://b.example", Error: "page at https://b.example/ has too little content", Err: scraper.ErrEmptyContent},
	}}

	resp, err := NewScrapeController(fe, 3).ScrapeBatch(context.Background(), types.ScrapeBatchRequest{URLs: []string{"a", "b"}})

	require.NoError(t, err)
	assert.Equal(t, 3, fe.parallel)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A", resp.Results[0].Document.Title)
	assert.Empty(t, resp.Results[0].Error)
	assert.Nil(t, resp.Results[1].Document)
	assert.Contains(t, resp.Results[1].Error, "too little content")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "timeout", outcome(scraper.ErrTimeout))
	assert.Equal(t, "not_configured", outcome(responder.ErrNotConfigured))
	assert.Equal(t, "canceled", outcome(context.Canceled))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}

func TestChatContext(t *testing.T) {
	ctrl := NewChatController(&fakeAnswerer{reply: "We sell rockets."})

	resp, err := ctrl.ChatContext(context.Background(), types.ChatContextRequest{
		Message:     "What do you sell?",
		WebsiteData: &types.StructuredDocument{Status: types.StatusSuccess},
	})
	require.NoError(t, err)
	assert.Equal(t, "We sell rockets.", resp.Response)
	assert.True(t, resp.HasWebsiteContext)

	resp, err = ctrl.ChatContext(context.Background(), types.ChatContextRequest{Message: "hi"})
	require.NoError(t, err)
	assert.False(t, resp.HasWebsiteContext)
}

func TestChatContextError(t *testing.T) {
	failed := metrics.GenerationsTotal.WithLabelValues("sync", string(responder.KindGenerationFailed))
	before := testutil.ToFloat64(failed)

	_, err := NewChatController(&fakeAnswerer{err: responder.ErrGenerationFailed}).
		ChatContext(context.Background(), types.ChatContextRequest{Message: "hi"})

	assert.ErrorIs(t, err, responder.ErrGenerationFailed)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestChatContextStream(t *testing.T) {
	ch, errCh := NewChatController(&fakeAnswerer{chunks: []string{"a", "b"}}).
		ChatContextStream(context.Background(), types.ChatContextRequest{Message: "hi"})

	var got []string
	for c := range ch {
		got = append(got, c)
	}
	assert.Equal(t, []string{"a", "b"}, got)
	assert.NoError(t, <-errCh)
}

func TestChatContextStreamCallerLeaves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, errCh := NewChatController(&fakeAnswerer{chunks: []string{"a", "b", "c"}}).
		ChatContextStream(ctx, types.ChatContextRequest{Message: "hi"})

	<-ch
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	for range ch {
	}
}
