package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// MessageService covers direct messaging and the derived conversation view.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID, content string) (*domain.Message, error)
	// Thread returns the exchange with partnerID oldest first and, as a side
	// effect, marks the partner's unread messages to the caller as read.
	Thread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error)
	// Conversations produces one summary per distinct partner, sorted by last
	// activity descending (summaries without a last message sort last). Any
	// storage error aborts the whole aggregation.
	Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
}
