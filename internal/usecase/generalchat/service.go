// Package generalchat handles small talk and anything the other routes
// did not claim.
package generalchat

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const systemPrompt = "Ты — Concierge AI, профессиональный ассистент по поиску и бронированию отелей.\n\n" +
	"Твоя роль: помощник по путешествиям. Ты анализируешь запросы пользователя " +
	"и даёшь рекомендации по отелям, дестинациям и путешествиям.\n\n" +
	"Основные задачи:\n" +
	"1. Помогать найти отель по критериям (локация, бюджет, звёзды, удобства)\n" +
	"2. Давать рекомендации на основе описания желаемого отдыха\n" +
	"3. Сравнивать варианты отелей и объяснять преимущества\n" +
	"4. Отвечать на вопросы о бронировании, ценах, услугах\n" +
	"5. Предлагать альтернативы, если вариант не подходит\n\n" +
	"Всегда отвечай только на русском языке. " +
	"Будь дружелюбным и держи фокус на теме отелей и путешествий."

// Completer produces a free-form answer from a system prompt and a user
// message.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Service is the small talk collaborator.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates a general chat service.
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Answer produces a conversational reply.
func (s *Service) Answer(ctx context.Context, text string) (string, error) {
	answer, err := s.completer.Complete(ctx, systemPrompt, text)
	if err != nil {
		return "", fmt.Errorf("general chat: %w", err)
	}

	s.logger.Debug("general chat answered", zap.Int("answer_len", len(answer)))
	return answer, nil
}
