package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLocalizer_ReturnsRephrasedText(t *testing.T) {
	gen := &stubGenerator{localize: fixed("¡Hola! Soy tu asistente médico.")}
	l := NewLocalizer(gen)

	got, err := l.Localize(context.Background(), "hola", MsgWelcome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "¡Hola! Soy tu asistente médico." {
		t.Fatalf("unexpected text: %q", got)
	}

	prompt := gen.lastPrompt()
	if !strings.Contains(prompt, "User wrote: hola") || !strings.Contains(prompt, "'"+MsgWelcome+"'") {
		t.Fatalf("prompt missing user message or base text: %q", prompt)
	}
}

func TestLocalizer_FailureReturnsBaseText(t *testing.T) {
	for _, cause := range []error{errors.New("quota exceeded"), ErrNoCandidates, ErrEmptyResponse} {
		l := NewLocalizer(&stubGenerator{localize: failing(cause)})

		got, err := l.Localize(context.Background(), "bye", MsgFarewell)
		if got != MsgFarewell {
			t.Fatalf("expected base text for %v, got %q", cause, got)
		}
		if err == nil {
			t.Fatalf("expected error for %v", cause)
		}
	}
}
