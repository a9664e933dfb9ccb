package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

type stubQuota struct {
	allowed bool
	err     error
	calls   int
}

func (q *stubQuota) Allow(context.Context, string) (bool, error) {
	q.calls++
	return q.allowed, q.err
}

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

func TestAsk_LiveReply(t *testing.T) {
	svc := NewChatService(&stubQuota{allowed: true}, &stubGenerator{reply: "become a colorist"}, discardLogger)

	reply, err := svc.Ask(context.Background(), "u1", "how do I get hired as an editor?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply.Mode != "live" || reply.Message != "become a colorist" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestAsk_QuotaExceeded(t *testing.T) {
	svc := NewChatService(&stubQuota{allowed: false}, &stubGenerator{reply: "x"}, discardLogger)

	if _, err := svc.Ask(context.Background(), "u1", "hello"); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestAsk_QuotaStoreDownStillAnswers(t *testing.T) {
	quota := &stubQuota{allowed: false, err: errors.New("redis down")}
	svc := NewChatService(quota, &stubGenerator{reply: "path"}, discardLogger)

	reply, err := svc.Ask(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("quota outage must not block the assistant: %v", err)
	}
	if reply.Mode != "live" {
		t.Fatalf("expected live reply, got %+v", reply)
	}
}

func TestAsk_FallbackOnGeneratorError(t *testing.T) {
	svc := NewChatService(&stubQuota{allowed: true}, &stubGenerator{err: errors.New("upstream 500")}, discardLogger)

	reply, err := svc.Ask(context.Background(), "u1", "I want to be a photographer")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply.Mode != "fallback" {
		t.Fatalf("expected fallback mode, got %s", reply.Mode)
	}
	if !strings.Contains(reply.Message, "Photographer") {
		t.Fatalf("photo keyword must select the photography path: %q", reply.Message)
	}
}

func TestAsk_NilGeneratorUsesFallback(t *testing.T) {
	svc := NewChatService(&stubQuota{allowed: true}, nil, discardLogger)

	for _, tc := range []struct {
		message string
		expect  string
	}{
		{"teach me video editing", "Video Editor"},
		{"I bought a camera", "Photographer"},
		{"what should I learn?", "Career Path generated"},
	} {
		reply, err := svc.Ask(context.Background(), "u1", tc.message)
		if err != nil {
			t.Fatalf("ask %q: %v", tc.message, err)
		}
		if reply.Mode != "fallback" || !strings.Contains(reply.Message, tc.expect) {
			t.Fatalf("message %q: expected fallback containing %q, got %+v", tc.message, tc.expect, reply)
		}
	}
}
