package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduskill/eduskill-api/internal/metrics"
	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// MessageService implements direct messaging and the conversation aggregator.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, logger: logger}
}

func (s *MessageService) Send(ctx context.Context, senderID, recipientID, content string) (*domain.Message, error) {
	if recipientID == "" || content == "" {
		return nil, fmt.Errorf("%w: recipient and content are required", domain.ErrValidation)
	}
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		s.logger.Error().Err(err).Str("sender_id", senderID).Msg("failed to send message")
		return nil, err
	}

	metrics.MessagesSentTotal.Inc()
	return created, nil
}

// Thread returns the full exchange with partnerID, oldest first. Fetching a
// thread marks the partner's unread messages to the caller as read; the flip
// is one-way and a second fetch is a no-op.
func (s *MessageService) Thread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error) {
	msgs, err := s.messages.FindThread(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}

	if err := s.messages.MarkRead(ctx, partnerID, userID); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Conversations scans every message involving userID and reduces them to one
// summary per distinct partner. Self-messages contribute no partner. The last
// message and unread count are resolved with independent per-partner queries,
// so a message arriving mid-aggregation may be reflected inconsistently; the
// view is not snapshot-isolated. Any storage error aborts the whole
// aggregation with no partial result.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	msgs, err := s.messages.FindInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate conversations: %w", err)
	}

	partnerIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, m := range msgs {
		partner, ok := m.PartnerOf(userID)
		if !ok {
			continue
		}
		if _, dup := seen[partner]; dup {
			continue
		}
		seen[partner] = struct{}{}
		partnerIDs = append(partnerIDs, partner)
	}

	profiles, err := s.users.FindProfiles(ctx, partnerIDs)
	if err != nil {
		return nil, fmt.Errorf("aggregate conversations: %w", err)
	}

	summaries := make([]domain.ConversationSummary, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		profile, ok := profiles[partnerID]
		if !ok {
			profile = domain.UserProfile{ID: partnerID}
		}

		summary := domain.ConversationSummary{User: profile}

		last, err := s.messages.FindLastBetween(ctx, userID, partnerID)
		switch {
		case err == nil:
			summary.LastMessage = last.Content
			at := last.CreatedAt
			summary.LastMessageAt = &at
		case errors.Is(err, domain.ErrMessageNotFound):
			// partner derived from the first scan but raced away; keep the
			// summary with no last message
		default:
			return nil, fmt.Errorf("aggregate conversations: %w", err)
		}

		unread, err := s.messages.CountUnread(ctx, partnerID, userID)
		if err != nil {
			return nil, fmt.Errorf("aggregate conversations: %w", err)
		}
		summary.UnreadCount = unread

		summaries = append(summaries, summary)
	}

	// Most recent activity first; summaries without a last message sort last.
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessageAt, summaries[j].LastMessageAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	metrics.ConversationsAggregatedTotal.Inc()
	return summaries, nil
}
