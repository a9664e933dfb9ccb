package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// MessageRepository defines persistence operations on the messages collection.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// FindInvolving returns every message where userID is sender or recipient,
	// newest first.
	FindInvolving(ctx context.Context, userID string) ([]*domain.Message, error)
	// FindThread returns the full exchange between two users, oldest first.
	FindThread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error)
	// FindLastBetween returns the single most recent message exchanged between
	// the two users, or ErrMessageNotFound when none exists.
	FindLastBetween(ctx context.Context, userID, partnerID string) (*domain.Message, error)
	// CountUnread counts messages from senderID to recipientID with read=false.
	CountUnread(ctx context.Context, senderID, recipientID string) (int64, error)
	// MarkRead flips read=false to true on all messages from senderID to
	// recipientID. The flag never transitions back.
	MarkRead(ctx context.Context, senderID, recipientID string) error
}
