package services

import (
	"context"
	"fmt"
)

// Localizer rephrases canned responses into the language of the user's message.
type Localizer struct {
	gen Generator
}

func NewLocalizer(gen Generator) *Localizer {
	return &Localizer{gen: gen}
}

// Localize returns the rephrased text, or baseText unchanged alongside the error
// when generation fails.
func (l *Localizer) Localize(ctx context.Context, userMessage, baseText string) (string, error) {
	text, err := l.gen.Generate(ctx, buildLocalizePrompt(userMessage, baseText))
	if err != nil {
		return baseText, fmt.Errorf("multilingual fixed response error: %w", err)
	}
	return text, nil
}
