// sitechat/controllers/chat.go
package controllers

import (
	"context"
	"time"

	"sitechat/sitechat/utils/metrics"
	"sitechat/sitechat/utils/types"
)

// Answerer is the part of *responder.Responder the controllers use.
type Answerer interface {
	Respond(ctx context.Context, message string, doc *types.StructuredDocument, history []types.ConversationTurn) (string, error)
	RespondStream(ctx context.Context, message string, doc *types.StructuredDocument, history []types.ConversationTurn) (<-chan string, <-chan error)
}

type ChatController struct {
	answerer Answerer
}

func NewChatController(answerer Answerer) *ChatController {
	return &ChatController{answerer: answerer}
}

// ChatContext answers one grounded question.
func (c *ChatController) ChatContext(ctx context.Context, req types.ChatContextRequest) (*types.ChatContextResponse, error) {
	start := time.Now()
	text, err := c.answerer.Respond(ctx, req.Message, req.WebsiteData, req.ConversationHistory)
	metrics.RecordGeneration("sync", outcome(err), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return &types.ChatContextResponse{
		Response:          text,
		HasWebsiteContext: req.WebsiteData.Succeeded(),
	}, nil
}

// ChatContextStream is ChatContext with incremental output. errCh yields at
// most one error once ch is closed.
func (c *ChatController) ChatContextStream(ctx context.Context, req types.ChatContextRequest) (chan string, chan error) {
	errCh := make(chan error, 1)
	ch := make(chan string)

	go func() {
		defer close(errCh)
		defer close(ch)

		start := time.Now()
		chunks, errs := c.answerer.RespondStream(ctx, req.Message, req.WebsiteData, req.ConversationHistory)
		left := false
		for chunk := range chunks {
			if left {
				continue
			}
			select {
			case ch <- chunk:
			case <-ctx.Done():
				left = true
			}
		}
		err := <-errs
		if err == nil && left {
			err = ctx.Err()
		}
		metrics.RecordGeneration("stream", outcome(err), time.Since(start).Seconds())
		if err != nil {
			errCh <- err
		}
	}()

	return ch, errCh
}
