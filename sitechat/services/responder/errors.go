package responder

import "fmt"

type Kind string

const (
	KindNotConfigured       Kind = "not_configured"
	KindGenerationFailed    Kind = "generation_failed"
	KindInvalidRequestShape Kind = "invalid_request_shape"
)

var (
	ErrNotConfigured       = &Error{Kind: KindNotConfigured}
	ErrGenerationFailed    = &Error{Kind: KindGenerationFailed}
	ErrInvalidRequestShape = &Error{Kind: KindInvalidRequestShape}
)

// Error classifies a responder failure. Message is safe to show to the
// caller.
type Error struct {
	Kind    Kind
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

func newError(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
