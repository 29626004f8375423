package models

import "time"

// Memory is a user-owned free-form note. Reading a memory bumps its access
// counters.
type Memory struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user"`
	Title                string    `json:"title"`
	Content              string    `json:"content"`
	Tags                 []string  `json:"tags"`
	IsImportant          bool      `json:"isImportant"`
	IsArchived           bool      `json:"isArchived"`
	RelatedConversations []string  `json:"relatedConversations"`
	LastAccessed         time.Time `json:"lastAccessed"`
	AccessCount          int64     `json:"accessCount"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
