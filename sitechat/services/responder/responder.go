package responder

import (
	"context"
	"errors"
	"strings"
	"time"

	"sitechat/sitechat/services/llm"
	"sitechat/sitechat/utils/logging"
	"sitechat/sitechat/utils/types"

	"go.uber.org/zap"
)

// Responder answers one question grounded on a caller-supplied document. It
// keeps no state between calls.
type Responder struct {
	gen     llm.Generator
	timeout time.Duration
}

// New returns a Responder backed by gen. A nil gen makes every call fail
// with NotConfigured; timeout <= 0 leaves the collaborator call unbounded.
func New(gen llm.Generator, timeout time.Duration) *Responder {
	return &Responder{gen: gen, timeout: timeout}
}

// Configured reports whether a collaborator is available.
func (r *Responder) Configured() bool { return r != nil && r.gen != nil }

// Validate checks the caller-supplied parts of a request.
func Validate(message string, history []types.ConversationTurn) error {
	if strings.TrimSpace(message) == "" {
		return newError(KindInvalidRequestShape, nil, "Message is required")
	}
	for _, turn := range history {
		if turn.Role != types.RoleUser && turn.Role != types.RoleAssistant {
			return newError(KindInvalidRequestShape, nil, "conversationHistory role must be \"user\" or \"assistant\"")
		}
	}
	return nil
}

// prepare runs the checks shared by Respond and RespondStream, in order:
// configuration, then request shape, then prompt assembly.
func (r *Responder) prepare(message string, doc *types.StructuredDocument, history []types.ConversationTurn) (string, error) {
	if !r.Configured() {
		return "", newError(KindNotConfigured, llm.ErrNotConfigured, "Language model is not configured")
	}
	if err := Validate(message, history); err != nil {
		return "", err
	}
	return BuildPrompt(message, doc, history), nil
}

func (r *Responder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return context.WithCancel(ctx)
}

// Respond makes exactly one collaborator call and returns its text
// verbatim.
func (r *Responder) Respond(ctx context.Context, message string, doc *types.StructuredDocument, history []types.ConversationTurn) (string, error) {
	defer logging.LogDuration(ctx, "Responder.Respond")()

	prompt, err := r.prepare(message, doc, history)
	if err != nil {
		return "", err
	}

	callCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	text, err := r.gen.Generate(callCtx, prompt)
	if err != nil {
		return "", r.generationError(ctx, err)
	}
	return text, nil
}

// RespondStream is Respond with incremental output. Collaborators without
// streaming support deliver the whole reply as one chunk.
func (r *Responder) RespondStream(ctx context.Context, message string, doc *types.StructuredDocument, history []types.ConversationTurn) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	prompt, err := r.prepare(message, doc, history)
	if err != nil {
		errCh <- err
		close(ch)
		close(errCh)
		return ch, errCh
	}

	go func() {
		defer close(errCh)
		defer close(ch)
		defer logging.LogDuration(ctx, "Responder.RespondStream")()

		callCtx, cancel := r.withTimeout(ctx)
		defer cancel()

		sg, ok := r.gen.(llm.StreamGenerator)
		if !ok {
			text, err := r.gen.Generate(callCtx, prompt)
			if err != nil {
				errCh <- r.generationError(ctx, err)
				return
			}
			select {
			case ch <- text:
			case <-ctx.Done():
				errCh <- ctx.Err()
			}
			return
		}

		chunks, errs := sg.GenerateStream(callCtx, prompt)
		for chunk := range chunks {
			select {
			case ch <- chunk:
			case <-ctx.Done():
				cancel()
				for range chunks {
				}
				errCh <- ctx.Err()
				return
			}
		}
		if err := <-errs; err != nil {
			errCh <- r.generationError(ctx, err)
		}
	}()

	return ch, errCh
}

// generationError maps a collaborator failure. Caller cancellation passes
// through unchanged; everything else, our own timeout included, is
// GenerationFailed.
func (r *Responder) generationError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return ctx.Err()
	}
	logging.ErrorLogger.Error("generation failed",
		zap.String("trace_id", logging.TraceID(ctx)),
		zap.Error(err),
	)
	msg := "Failed to generate response"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "Timed out generating response"
	}
	return newError(KindGenerationFailed, err, msg)
}
