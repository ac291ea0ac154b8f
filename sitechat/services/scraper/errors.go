package scraper

import "fmt"

// Kind classifies an extraction failure.
type Kind string

const (
	KindInvalidURL   Kind = "invalid_url"
	KindTimeout      Kind = "timeout"
	KindFetchFailed  Kind = "fetch_failed"
	KindNotHTML      Kind = "not_html"
	KindEmptyContent Kind = "empty_content"
	KindParseFailure Kind = "parse_failure"
)

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrInvalidURL   = &Error{Kind: KindInvalidURL}
	ErrTimeout      = &Error{Kind: KindTimeout}
	ErrFetchFailed  = &Error{Kind: KindFetchFailed}
	ErrNotHTML      = &Error{Kind: KindNotHTML}
	ErrEmptyContent = &Error{Kind: KindEmptyContent}
	ErrParseFailure = &Error{Kind: KindParseFailure}
)

// Error is the error type Extract returns for every failure except caller
// cancellation. Message is safe to show to the caller; Err carries the
// underlying cause for logs.
type Error struct {
	Kind    Kind
	Status  int // upstream HTTP status, FetchFailed only
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
