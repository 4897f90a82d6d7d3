// Package domain holds the request-scoped entities exchanged by the mirror pipeline.
package domain

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks a message written by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message previously produced by the assistant.
	RoleAssistant Role = "assistant"
	// RoleSystem marks a framing instruction.
	RoleSystem Role = "system"
)

// Message limits.
const (
	MaxContentChars      = 4000
	MinMessages          = 1
	MaxMessages          = 20
	DigestUserMessages   = 4
	DigestThemeCharLimit = 300
)

// Message is a single conversational turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered message list, most recent last.
type Conversation []Message

// LatestUserMessage returns the most recent user message, if any.
func (c Conversation) LatestUserMessage() (Message, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Role == RoleUser {
			return c[i], true
		}
	}
	return Message{}, false
}

// UserMessages returns up to the last n user messages in chronological order.
// The conversation itself is not modified.
func (c Conversation) UserMessages(n int) []Message {
	var out []Message
	for _, m := range c {
		if m.Role == RoleUser {
			out = append(out, m)
		}
	}
	if n >= 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
