package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// NormalizeURL prepends https:// when raw has no http(s) scheme and parses
// the result. "example.com" becomes "https://example.com/".
func NormalizeURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, newError(KindInvalidURL, nil, "URL is required")
	}
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, newError(KindInvalidURL, err, "invalid URL %q", raw)
	}
	if u.Hostname() == "" {
		return nil, newError(KindInvalidURL, nil, "invalid URL %q: missing host", raw)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// page is a fetched, decoded HTML response.
type page struct {
	body     string
	finalURL *url.URL
}

// fetch performs the single outbound request of an extraction.
func (s *Scraper) fetch(ctx context.Context, target *url.URL) (*page, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, newError(KindInvalidURL, err, "invalid URL %q", target.String())
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.transportError(ctx, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindFetchFailed,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to fetch %s: HTTP %d", target, resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxBodyBytes))
	if err != nil {
		return nil, s.transportError(ctx, target, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(raw)
	}
	if !isHTML(contentType) {
		return nil, newError(KindNotHTML, nil, "content at %s is not HTML (%s)", target, contentType)
	}

	decoded, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, newError(KindParseFailure, err, "failed to decode %s", target)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, newError(KindParseFailure, err, "failed to decode %s", target)
	}
	if utf8.RuneCount(body) < s.opts.MinBodyChars {
		return nil, newError(KindEmptyContent, nil, "page at %s has too little content", target)
	}

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return &page{body: string(body), finalURL: final}, nil
}

func (s *Scraper) transportError(ctx context.Context, target *url.URL, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return newError(KindTimeout, err, "timed out fetching %s after %s", target, s.opts.Timeout)
	}
	if errors.Is(err, context.Canceled) {
		// the caller went away; nothing useful to classify
		return err
	}
	return newError(KindFetchFailed, err, "failed to fetch %s", target)
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
