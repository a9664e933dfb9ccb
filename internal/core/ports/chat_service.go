package ports

import "context"

// ChatQuota limits how many assistant requests a user may make per day.
type ChatQuota interface {
	// Allow consumes one request from the user's daily budget and reports
	// whether the request may proceed.
	Allow(ctx context.Context, userID string) (bool, error)
}

// ChatGenerator produces an assistant reply for a user message.
type ChatGenerator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// ChatReply is the assistant's answer. Mode records whether it came from the
// generative API ("live") or the canned fallback ("fallback").
type ChatReply struct {
	Message string
	Mode    string
}

// ChatService is the career-navigator assistant.
type ChatService interface {
	Ask(ctx context.Context, userID, message string) (*ChatReply, error)
}
