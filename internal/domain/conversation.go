package domain

import "time"

// Conversation is the per-conversation state owned by the chat engine.
type Conversation struct {
	ID                   string
	AwaitingCloseConfirm bool
	LastActivity         time.Time
}
