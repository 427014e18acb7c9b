package handlers

import (
	"context"
	_ "embed"
	"net/http"

	"medibot-backend/internal/models"
)

//go:embed templates/index.html
var indexHTML []byte

type chatService interface {
	Reply(ctx context.Context, raw string) string
}

type ChatHandler struct {
	chatService chatService
	backend     string
}

func NewChatHandler(chatService chatService, backend string) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		backend:     backend,
	}
}

// Get answers one chat message read from the "msg" form field (query string or
// urlencoded body). The response is always 200 with a plain-text body; errors
// are already folded into the reply text by the chat service.
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg := r.FormValue("msg")

	reply := h.chatService.Reply(r.Context(), msg)
	writeText(w, http.StatusOK, reply)
}

func (h *ChatHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Backend: h.backend})
}
