package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
	"github.com/goamponsah/AI-Math-Tutor/app/factory"
)

type entitlementReader interface {
	ActiveSubscription(ctx context.Context, email string) *entity.Subscription
}

type assistantClient interface {
	CreateChatCompletion(ctx context.Context, message string) (string, error)
}

type ChatService struct {
	entitlements entitlementReader
	assistant    assistantClient
	logger       logrus.FieldLogger
}

func NewChatService(entitlements entitlementReader, assistant assistantClient) *ChatService {
	return &ChatService{
		entitlements: entitlements,
		assistant:    assistant,
		logger:       factory.NewModuleLogger("chat-service"),
	}
}

// Ask forwards one tutoring question to the model for an entitled user. The
// entitlement check fails closed, so a store outage reads as not entitled.
func (s *ChatService) Ask(ctx context.Context, email, message string) (string, error) {
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if email == "" || message == "" {
		return "", ErrInvalidRequest
	}

	if s.entitlements.ActiveSubscription(ctx, email) == nil {
		return "", ErrNotEntitled
	}

	reply, err := s.assistant.CreateChatCompletion(ctx, message)
	if err != nil {
		s.logger.WithError(err).Error("chat completion failed")
		return "", ErrAssistantUnavailable
	}

	return reply, nil
}
