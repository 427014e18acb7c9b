package services

import (
	"fmt"
	"strings"
)

// SystemPrompt is the answer template for medical queries. {context} and {query}
// are substituted in a single pass by RenderAnswerPrompt.
const SystemPrompt = "You are a knowledgeable and helpful medical assistant. " +
	"Use only the provided context to answer the user's query. " +
	"If the answer is not found in the context, respond with: 'I'm sorry, I don't have enough information to answer that.' " +
	"Your response should be informative and reassuring, ideally within 4–5 sentences. " +
	"Always respond in the same language as the user's query. " +
	"Format your answer as clear and concise bullet points for better readability.\n\n" +
	"Context:\n{context}\n\nUser Query:\n{query}\n\nAnswer:"

// Fixed user-facing messages.
const (
	MsgEmptyQuery  = "⚠️ Please enter a valid query."
	MsgWelcome     = "👋 Hello! I am your medical assistant. How can I help you today?"
	MsgFarewell    = "😊 Feel free to ask me about medical assistance anytime. Thank you for choosing me!"
	MsgOutOfScope  = "⚠️ MediBot assists only with medical or health-related queries. Please rephrase accordingly."
	NoContextFound = "No relevant medical information found."

	ApologyNoResponse    = "⚠️ I'm sorry, I couldn't generate a response."
	ApologyGenerationErr = "⚠️ There was an issue generating a response."
)

// MsgQueryTooLong returns the length warning for the configured limit.
func MsgQueryTooLong(limit int) string {
	return fmt.Sprintf("⚠️ Query too long. Please keep it under %d characters.", limit)
}

// RenderAnswerPrompt fills SystemPrompt. Placeholders inside the substituted
// values are left untouched.
func RenderAnswerPrompt(context, query string) string {
	return strings.NewReplacer("{context}", context, "{query}", query).Replace(SystemPrompt)
}

func buildClassifyPrompt(message string) string {
	var b strings.Builder

	b.WriteString("Classify the user's message into one of the following categories:\n")
	b.WriteString("- 'greeting' (e.g., hello, hi)\n")
	b.WriteString("- 'assistant' (user is asking a medical question or requesting health help)\n")
	b.WriteString("- 'exit' (e.g., thank you, bye, talk later)\n")
	b.WriteString("- 'other' (anything unrelated to the above)\n\n")
	b.WriteString("Respond with only one of: greeting, assistant, exit, other.\n\n")
	b.WriteString("User message: ")
	b.WriteString(message)

	return b.String()
}

func buildLocalizePrompt(userMessage, baseText string) string {
	return fmt.Sprintf("User wrote: %s\n\nRephrase the following message in the same language as the user:\n'%s'", userMessage, baseText)
}
