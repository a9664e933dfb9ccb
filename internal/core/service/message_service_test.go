package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

func newMessageFixture() (*MessageService, *stubMessageRepo, *stubUserRepo) {
	messages := newStubMessageRepo()
	users := newStubUserRepo()
	return NewMessageService(messages, users, discardLogger), messages, users
}

func TestSend_RequiresRecipientAndContent(t *testing.T) {
	svc, _, users := newMessageFixture()
	users.addUser("bob", "Bob", domain.RoleStudent)

	if _, err := svc.Send(context.Background(), "alice", "", "hi"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty recipient, got %v", err)
	}
	if _, err := svc.Send(context.Background(), "alice", "bob", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty content, got %v", err)
	}
}

func TestSend_UnknownRecipient(t *testing.T) {
	svc, _, _ := newMessageFixture()

	if _, err := svc.Send(context.Background(), "alice", "ghost", "hi"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSend_CreatesUnreadMessage(t *testing.T) {
	svc, _, users := newMessageFixture()
	users.addUser("bob", "Bob", domain.RoleStudent)

	msg, err := svc.Send(context.Background(), "alice", "bob", "hello bob")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Read {
		t.Fatalf("new message must start unread")
	}
	if msg.SenderID != "alice" || msg.RecipientID != "bob" {
		t.Fatalf("unexpected endpoints: %s -> %s", msg.SenderID, msg.RecipientID)
	}
}

func TestThread_MarksPartnerMessagesRead(t *testing.T) {
	svc, messages, _ := newMessageFixture()
	messages.addMessage("bob", "alice", "one", 1, false)
	messages.addMessage("alice", "bob", "two", 2, false)
	messages.addMessage("bob", "alice", "three", 3, false)

	msgs, err := svc.Thread(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "one" || msgs[2].Content != "three" {
		t.Fatalf("thread must be oldest first, got %q ... %q", msgs[0].Content, msgs[2].Content)
	}

	// Bob's messages to Alice flipped to read; Alice's own stayed untouched.
	unreadFromBob, _ := messages.CountUnread(context.Background(), "bob", "alice")
	if unreadFromBob != 0 {
		t.Fatalf("expected 0 unread from bob after thread fetch, got %d", unreadFromBob)
	}
	unreadFromAlice, _ := messages.CountUnread(context.Background(), "alice", "bob")
	if unreadFromAlice != 1 {
		t.Fatalf("alice's sent message must stay unread for bob, got %d", unreadFromAlice)
	}
}

func TestConversations_OneSummaryPerPartnerSortedByRecency(t *testing.T) {
	svc, messages, users := newMessageFixture()
	users.addUser("bob", "Bob", domain.RoleCreator)
	users.addUser("carol", "Carol", domain.RoleClient)

	messages.addMessage("bob", "alice", "early from bob", 1, true)
	messages.addMessage("alice", "bob", "reply to bob", 2, false)
	messages.addMessage("carol", "alice", "carol says hi", 5, false)
	messages.addMessage("carol", "alice", "carol again", 6, false)

	summaries, err := svc.Conversations(context.Background(), "alice")
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	// Carol messaged last, so she sorts first.
	if summaries[0].User.ID != "carol" || summaries[1].User.ID != "bob" {
		t.Fatalf("expected [carol, bob], got [%s, %s]", summaries[0].User.ID, summaries[1].User.ID)
	}
	if summaries[0].LastMessage != "carol again" {
		t.Fatalf("wrong last message for carol: %q", summaries[0].LastMessage)
	}
	if summaries[0].UnreadCount != 2 {
		t.Fatalf("expected 2 unread from carol, got %d", summaries[0].UnreadCount)
	}

	// Bob's thread: last message is Alice's own reply, unread counts only
	// messages addressed to Alice.
	if summaries[1].LastMessage != "reply to bob" {
		t.Fatalf("wrong last message for bob: %q", summaries[1].LastMessage)
	}
	if summaries[1].UnreadCount != 0 {
		t.Fatalf("expected 0 unread from bob, got %d", summaries[1].UnreadCount)
	}
	if summaries[1].User.Name != "Bob" {
		t.Fatalf("partner profile not resolved: %+v", summaries[1].User)
	}
}

func TestConversations_SelfMessagesDeriveNoPartner(t *testing.T) {
	svc, messages, users := newMessageFixture()
	users.addUser("bob", "Bob", domain.RoleStudent)

	messages.addMessage("alice", "alice", "note to self", 1, false)
	messages.addMessage("bob", "alice", "real conversation", 2, false)

	summaries, err := svc.Conversations(context.Background(), "alice")
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("self-message must not create a conversation, got %d summaries", len(summaries))
	}
	if summaries[0].User.ID != "bob" {
		t.Fatalf("expected bob, got %s", summaries[0].User.ID)
	}
}

func TestConversations_EmptyInbox(t *testing.T) {
	svc, _, _ := newMessageFixture()

	summaries, err := svc.Conversations(context.Background(), "alice")
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty slice, got %d", len(summaries))
	}
}

func TestConversations_UnknownPartnerKeepsPlaceholderProfile(t *testing.T) {
	svc, messages, _ := newMessageFixture()
	// Partner deleted their account; no profile resolves.
	messages.addMessage("ghost", "alice", "still here", 1, false)

	summaries, err := svc.Conversations(context.Background(), "alice")
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].User.ID != "ghost" || summaries[0].User.Name != "" {
		t.Fatalf("expected placeholder profile for missing user, got %+v", summaries[0].User)
	}
}

func TestConversations_StorageErrorAborts(t *testing.T) {
	svc, messages, users := newMessageFixture()
	users.addUser("bob", "Bob", domain.RoleStudent)
	messages.addMessage("bob", "alice", "hi", 1, false)
	messages.countUnreadErr = errors.New("connection reset")

	summaries, err := svc.Conversations(context.Background(), "alice")
	if err == nil {
		t.Fatalf("expected error when unread count fails")
	}
	if summaries != nil {
		t.Fatalf("no partial result on failure, got %d summaries", len(summaries))
	}
}

func TestConversations_MissingLastMessageSortsLast(t *testing.T) {
	svc, messages, users := newMessageFixture()
	users.addUser("bob", "Bob", domain.RoleStudent)
	users.addUser("carol", "Carol", domain.RoleStudent)
	messages.addMessage("bob", "alice", "from bob", 1, false)
	messages.addMessage("carol", "alice", "from carol", 2, false)
	// All per-pair lookups race away: every summary loses its last message
	// but the aggregation still succeeds.
	messages.lastBetweenErr = domain.ErrMessageNotFound

	summaries, err := svc.Conversations(context.Background(), "alice")
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.LastMessageAt != nil || s.LastMessage != "" {
			t.Fatalf("expected empty last message, got %+v", s)
		}
	}
}
