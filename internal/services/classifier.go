package services

import (
	"context"
	"fmt"

	"medibot-backend/internal/models"
)

// Generator is a stateless single-turn text generation client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type IntentClassifier struct {
	gen Generator
}

func NewIntentClassifier(gen Generator) *IntentClassifier {
	return &IntentClassifier{gen: gen}
}

// Classify always returns a usable Intent. When the model call fails or its
// label is not one of the known intents, the Intent is IntentAssistant and the
// error explains why.
func (c *IntentClassifier) Classify(ctx context.Context, message string) (models.Intent, error) {
	label, err := c.gen.Generate(ctx, buildClassifyPrompt(message))
	if err != nil {
		return models.IntentAssistant, fmt.Errorf("intent detection failed: %w", err)
	}

	intent, ok := models.ParseIntent(label)
	if !ok {
		return intent, fmt.Errorf("intent detection returned unrecognized label %q", label)
	}
	return intent, nil
}
