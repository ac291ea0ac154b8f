package responder

import (
	"strings"

	"sitechat/sitechat/utils/types"
)

// HistoryWindow is how many of the most recent turns are replayed.
const HistoryWindow = 6

const preamble = `You are an intelligent chatbot assistant for a specific website. Your role is to answer questions ONLY about the website and its content that has been provided to you.

STRICT RULES:
1. ONLY answer questions related to the website content provided
2. If a question is not related to the website, politely decline and redirect to website topics
3. Use the website data to provide accurate, helpful responses
4. Be conversational but professional
5. If you don't have enough information from the website data, say so clearly

`

// NoWebsiteInstruction replaces the website block when no document is loaded.
const NoWebsiteInstruction = "No website data has been provided yet. Please ask the user to provide a website URL first before you can answer questions about any website."

const closing = "Please respond according to the rules above. If the question is not related to the website content, politely decline and suggest asking about the website instead."

// BuildPrompt assembles the single grounded prompt for one question. It is
// pure: identical inputs give byte-identical output.
func BuildPrompt(message string, doc *types.StructuredDocument, history []types.ConversationTurn) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	if doc.Succeeded() {
		writeWebsite(&sb, doc)
	} else {
		sb.WriteString(NoWebsiteInstruction)
	}

	if len(history) > 0 {
		sb.WriteString("\nPREVIOUS CONVERSATION:\n")
		if len(history) > HistoryWindow {
			history = history[len(history)-HistoryWindow:]
		}
		for _, turn := range history {
			speaker := "Assistant"
			if turn.Role == types.RoleUser {
				speaker = "User"
			}
			sb.WriteString(speaker + ": " + turn.Content + "\n")
		}
	}

	sb.WriteString("\n\nCurrent User Question: ")
	sb.WriteString(message)
	sb.WriteString("\n\n")
	sb.WriteString(closing)
	return sb.String()
}

func writeWebsite(sb *strings.Builder, doc *types.StructuredDocument) {
	headings := make([]string, 0, len(doc.Headings))
	for _, h := range doc.Headings {
		headings = append(headings, strings.ToUpper(h.Level)+": "+h.Text)
	}
	nav := make([]string, 0, len(doc.Navigation))
	for _, n := range doc.Navigation {
		nav = append(nav, n.Text)
	}

	sb.WriteString("WEBSITE INFORMATION:\n")
	sb.WriteString("Website: " + doc.URL + "\n")
	sb.WriteString("Title: " + or(doc.Title, "N/A") + "\n")
	sb.WriteString("Description: " + or(doc.Description, "N/A") + "\n")
	sb.WriteString("\nWEBSITE CONTENT:\n")
	sb.WriteString(or(doc.MainText, "No content available") + "\n")
	sb.WriteString("\nWEBSITE STRUCTURE:\n")
	sb.WriteString("Headings: " + or(strings.Join(headings, ", "), "None") + "\n")
	sb.WriteString("\nNavigation: " + or(strings.Join(nav, ", "), "None") + "\n")
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
