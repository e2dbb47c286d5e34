package usecase

import (
	"context"
	"strings"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
)

type AnswerClassifier struct {
	chat     ports.ChatClassificationService
	settings domain.ClassifierSettings
}

func NewAnswerClassifier(chat ports.ChatClassificationService, settings domain.ClassifierSettings) *AnswerClassifier {
	return &AnswerClassifier{chat: chat, settings: settings}
}

// Classify sends prompt as a single non-streaming chat turn and returns the trimmed answer.
func (c *AnswerClassifier) Classify(ctx context.Context, prompt string) (string, error) {
	answer, err := c.chat.Chat(ctx, domain.ChatRequest{
		ModelID:       c.settings.ModelID,
		CompartmentID: c.settings.CompartmentID,
		Message:       prompt,
		Temperature:   c.settings.Temperature,
		MaxTokens:     c.settings.MaxTokens,
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrClassification, "chat", err)
	}
	return strings.TrimSpace(answer), nil
}
