package models

import "strings"

// Intent is the coarse handling category of a user message.
type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentAssistant Intent = "assistant"
	IntentExit      Intent = "exit"
	IntentOther     Intent = "other"
)

// Intents lists every known intent in classification-prompt order.
var Intents = []Intent{IntentGreeting, IntentAssistant, IntentExit, IntentOther}

// ParseIntent maps a raw model label onto the closed Intent set.
// Unknown labels resolve to IntentAssistant with ok=false so medical help is never blocked.
func ParseIntent(label string) (Intent, bool) {
	switch Intent(strings.ToLower(strings.TrimSpace(label))) {
	case IntentGreeting:
		return IntentGreeting, true
	case IntentAssistant:
		return IntentAssistant, true
	case IntentExit:
		return IntentExit, true
	case IntentOther:
		return IntentOther, true
	default:
		return IntentAssistant, false
	}
}
