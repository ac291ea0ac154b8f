// sitechat/utils/types/chat.go
package types

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ConversationTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatContextRequest struct {
	Message             string              `json:"message"`
	WebsiteData         *StructuredDocument `json:"websiteData"`
	ConversationHistory []ConversationTurn  `json:"conversationHistory"`
}

type ChatContextResponse struct {
	Response          string `json:"response"`
	HasWebsiteContext bool   `json:"hasWebsiteContext"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
