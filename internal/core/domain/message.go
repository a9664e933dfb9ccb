package domain

import "time"

// Message is immutable once created except for the Read flag, which only ever
// transitions false to true when the recipient fetches the thread.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartnerOf returns the counterpart of userID on this message and whether one
// exists. A self-message (sender == recipient == userID) has no partner and
// deliberately contributes nothing to conversation derivation.
func (m *Message) PartnerOf(userID string) (string, bool) {
	switch {
	case m.SenderID != userID:
		return m.SenderID, true
	case m.RecipientID != userID:
		return m.RecipientID, true
	default:
		return "", false
	}
}

// ConversationSummary is the derived, non-persisted per-partner view returned
// by the conversation aggregator.
type ConversationSummary struct {
	User          UserProfile `json:"user"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt *time.Time  `json:"last_message_at"`
	UnreadCount   int64       `json:"unread_count"`
}
