package services

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"medibot-backend/internal/metrics"
	"medibot-backend/internal/models"
)

// ChatService runs the per-request pipeline: validate, classify, dispatch.
// It holds no mutable state and is safe for concurrent use.
type ChatService struct {
	classifier *IntentClassifier
	responder  *Responder
	localizer  *Localizer
	maxLength  int
	metrics    *metrics.Metrics
}

func NewChatService(classifier *IntentClassifier, responder *Responder, localizer *Localizer, maxLength int, m *metrics.Metrics) *ChatService {
	if maxLength <= 0 {
		maxLength = 500
	}
	return &ChatService{
		classifier: classifier,
		responder:  responder,
		localizer:  localizer,
		maxLength:  maxLength,
		metrics:    m,
	}
}

// Reply returns the full response text for a raw user message. It never fails:
// every component error is logged and replaced by that component's fallback.
func (s *ChatService) Reply(ctx context.Context, raw string) string {
	msg := strings.TrimSpace(raw)

	if msg == "" {
		s.metrics.RecordRejection(metrics.ReasonEmpty)
		return MsgEmptyQuery
	}
	if utf8.RuneCountInString(msg) > s.maxLength {
		s.metrics.RecordRejection(metrics.ReasonTooLong)
		return MsgQueryTooLong(s.maxLength)
	}

	log.Printf("User Input: %s", msg)

	intent, err := s.classifier.Classify(ctx, msg)
	if err != nil {
		log.Printf("Intent detection fell back to %s: %v", intent, err)
		s.metrics.RecordFallback(metrics.StageClassify)
	}
	log.Printf("Identified Intent: %s", intent)
	s.metrics.RecordIntent(string(intent))

	switch intent {
	case models.IntentGreeting:
		return s.localize(ctx, msg, MsgWelcome)
	case models.IntentExit:
		return s.localize(ctx, msg, MsgFarewell)
	case models.IntentOther:
		return s.localize(ctx, msg, MsgOutOfScope)
	default: // IntentAssistant
		answer, err := s.responder.Respond(ctx, msg)
		if err != nil {
			log.Printf("Gemini API Error: %v", err)
			s.metrics.RecordFallback(metrics.StageGenerate)
		}
		log.Printf("Gemini Response: %s", answer)
		return answer
	}
}

func (s *ChatService) localize(ctx context.Context, msg, base string) string {
	text, err := s.localizer.Localize(ctx, msg, base)
	if err != nil {
		log.Printf("%v", err)
		s.metrics.RecordFallback(metrics.StageLocalize)
	}
	return text
}
