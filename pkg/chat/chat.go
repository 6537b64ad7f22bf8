// Package chat contains the conversational core of MoodTunes: the
// conversation turn type exchanged with the model, the parser that turns a
// free-text model reply into a structured recommendation, and the prompt and
// mood helpers used to steer the completion request. Everything in this
// package is pure so it can be tested without a live model connection.
package chat

// Role values for conversation turns. They mirror the chat-completion API
// wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. Turns are ordered and immutable once
// appended; the caller owns the slice and passes it by value.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
