// Package research answers travel lookup queries (weather, flights,
// currency, prices) via the chat completion provider. These queries
// bypass catalog retrieval entirely.
package research

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Completer produces a free-form answer from a system prompt and a user
// message.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Service is the research collaborator.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates a research service.
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Answer resolves a lookup query with a prompt specialized to its topic.
func (s *Service) Answer(ctx context.Context, text string) (string, error) {
	prompt := systemPromptFor(text)

	answer, err := s.completer.Complete(ctx, prompt, text)
	if err != nil {
		return "", fmt.Errorf("research query: %w", err)
	}

	s.logger.Debug("research answered", zap.Int("answer_len", len(answer)))
	return answer, nil
}

// systemPromptFor picks a topic-specific prompt by the same keyword probe
// that routed the query here.
func systemPromptFor(text string) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "погода", "температура", "климат"):
		return "Ты специалист по погоде и климату. " +
			"Дай точную информацию о температуре, влажности и осадках. " +
			"Отвечай на русском с конкретными цифрами."
	case containsAny(lower, "авиабилет", "перелет", "перелёт", "рейс"):
		return "Ты агент по авиабилетам. " +
			"Дай реальные цены в рублях с датами вылета."
	case containsAny(lower, "курс", "валюта", "доллар"):
		return "Ты специалист по валютам. " +
			"Дай текущие курсы USD, EUR, TRY к RUB."
	case containsAny(lower, "цена", "стоимость", "сколько"):
		return "Ты агент по поиску цен. " +
			"Дай точные цены отелей и услуг с датами."
	default:
		return "Ты research-агент по путешествиям. " +
			"Отвечай по существу и не выдумывай данные."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
