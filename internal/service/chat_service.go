package service

import (
	"context"
	"errors"
	"log/slog"

	"learnhub/internal/llm"
	"learnhub/internal/middleware"
)

// Replies rendered in place of a model answer when the upstream call fails.
const (
	ChatTimeoutReply     = "Request timed out. Please try again later."
	chatAPIErrorPrefix   = "API error: "
	chatUnexpectedPrefix = "An unexpected error occurred: "
)

// TextGenerator produces a model reply for a single prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ChatService relays chat queries to the language model.
type ChatService struct {
	generator TextGenerator
}

// NewChatService creates a new chat service.
func NewChatService(generator TextGenerator) *ChatService {
	return &ChatService{generator: generator}
}

// Reply never fails: upstream errors are rendered into the returned text.
func (s *ChatService) Reply(ctx context.Context, query string) string {
	reply, err := s.generator.GenerateText(ctx, query)
	if err == nil {
		return reply
	}

	var statusErr *llm.StatusError
	var reason, rendered string
	switch {
	case errors.Is(err, llm.ErrTimeout):
		reason, rendered = "timeout", ChatTimeoutReply
	case errors.As(err, &statusErr):
		reason, rendered = "status", chatAPIErrorPrefix+statusErr.Body
	default:
		reason, rendered = "other", chatUnexpectedPrefix+err.Error()
	}

	middleware.ChatUpstreamFailures.WithLabelValues(reason).Inc()
	middleware.Logger.WarnContext(ctx, "chat upstream failed",
		slog.String("reason", reason),
		slog.String("error", err.Error()),
	)
	return rendered
}
