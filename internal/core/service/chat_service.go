package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eduskill/eduskill-api/internal/metrics"
	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// ChatService proxies the career-navigator assistant. When the generative API
// is unavailable (no key, quota, network) it falls back to deterministic
// canned career paths so the endpoint never fails because of the upstream.
type ChatService struct {
	quota     ports.ChatQuota
	generator ports.ChatGenerator // nil when no API key is configured
	logger    zerolog.Logger
}

func NewChatService(quota ports.ChatQuota, generator ports.ChatGenerator, logger zerolog.Logger) *ChatService {
	return &ChatService{quota: quota, generator: generator, logger: logger}
}

func (s *ChatService) Ask(ctx context.Context, userID, message string) (*ports.ChatReply, error) {
	allowed, err := s.quota.Allow(ctx, userID)
	if err != nil {
		// Quota store being down should not take the assistant with it.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("chat quota check failed, allowing request")
	} else if !allowed {
		metrics.ChatRequestsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrQuotaExceeded
	}

	if s.generator != nil {
		reply, err := s.generator.Generate(ctx, message)
		if err == nil {
			metrics.ChatRequestsTotal.WithLabelValues("live").Inc()
			return &ports.ChatReply{Message: reply, Mode: "live"}, nil
		}
		s.logger.Warn().Err(err).Msg("generative api call failed, using fallback")
	}

	metrics.ChatRequestsTotal.WithLabelValues("fallback").Inc()
	return &ports.ChatReply{Message: fallbackReply(message), Mode: "fallback"}, nil
}

// fallbackReply keys a canned career path on the user's message.
func fallbackReply(message string) string {
	input := strings.ToLower(message)
	switch {
	case strings.Contains(input, "photo") || strings.Contains(input, "camera"):
		return "Career Path: Professional Photographer. " +
			"1. Master the fundamentals with a camera-basics course. " +
			"2. Pass an advanced photo-editing certification. " +
			"3. Upload three verified projects to your portfolio. " +
			"Recommended first step: enroll in a Photography course today."
	case strings.Contains(input, "video") || strings.Contains(input, "edit") || strings.Contains(input, "film"):
		return "Career Path: Video Editor. To get hired you should pass three certifications: " +
			"1. Cinematic storytelling. 2. Editing-software mastery. 3. Color grading. " +
			"Action: start a Video Editing course to earn your first badge."
	default:
		return "Career Path generated. 1. Complete the certified core modules for your goal. " +
			"2. Pass the final skill assessment to earn your badge. " +
			"3. Display the verified badge on your profile so clients can find you. " +
			"Check the courses tab to begin."
	}
}
