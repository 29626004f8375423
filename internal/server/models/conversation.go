package models

import "time"

// Message roles.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// Message is a single turn inside a conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a user-owned chat record. Messages and tags are stored as
// JSONB documents; the server never inspects them beyond ownership checks.
type Conversation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user"`
	Title      string    `json:"title"`
	Messages   []Message `json:"messages"`
	Tags       []string  `json:"tags"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DeriveTitle fills a missing title from the first message, truncated to
// 50 characters. Truncation counts runes so multi-byte content is never
// split mid-character.
func (c *Conversation) DeriveTitle() {
	if c.Title != "" || len(c.Messages) == 0 {
		return
	}
	first := []rune(c.Messages[0].Content)
	if len(first) > 50 {
		c.Title = string(first[:50]) + "..."
		return
	}
	c.Title = string(first)
}
