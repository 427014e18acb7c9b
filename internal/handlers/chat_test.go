package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medibot-backend/internal/models"
)

type stubChatService struct {
	got   string
	calls int
}

func (s *stubChatService) Reply(ctx context.Context, raw string) string {
	s.calls++
	s.got = raw
	if strings.TrimSpace(raw) == "" {
		return "⚠️ Please enter a valid query."
	}
	return "reply to " + raw
}

func TestChatHandler_GetFormBody(t *testing.T) {
	svc := &stubChatService{}
	h := NewChatHandler(svc, "pinecone")

	form := url.Values{"msg": {"What are flu symptoms?"}}
	req := httptest.NewRequest(http.MethodPost, "/get", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	if rr.Body.String() != "reply to What are flu symptoms?" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if svc.got != "What are flu symptoms?" {
		t.Fatalf("unexpected message forwarded: %q", svc.got)
	}
}

func TestChatHandler_GetQueryString(t *testing.T) {
	svc := &stubChatService{}
	h := NewChatHandler(svc, "pinecone")

	req := httptest.NewRequest(http.MethodGet, "/get?msg=hello", nil)
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Body.String() != "reply to hello" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestChatHandler_GetMissingMessageStillOK(t *testing.T) {
	svc := &stubChatService{}
	h := NewChatHandler(svc, "pinecone")

	req := httptest.NewRequest(http.MethodPost, "/get", nil)
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "⚠️ Please enter a valid query." {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if svc.calls != 1 || svc.got != "" {
		t.Fatalf("expected empty message to be forwarded once, got %d calls with %q", svc.calls, svc.got)
	}
}

func TestChatHandler_Index(t *testing.T) {
	h := NewChatHandler(&stubChatService{}, "pinecone")

	rr := httptest.NewRecorder()
	h.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), `fetch("/get"`) {
		t.Fatalf("expected chat page to post to /get")
	}
}

func TestChatHandler_Health(t *testing.T) {
	h := NewChatHandler(&stubChatService{}, "pgvector")

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if body.Status != "ok" || body.Backend != "pgvector" {
		t.Fatalf("unexpected health response: %+v", body)
	}
}

func TestNotFound_IncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()

	NotFound(rr, req)

	var body models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if rr.Code != http.StatusNotFound || body.Error.Code != "NOT_FOUND" || body.Error.RequestID != "req-123" {
		t.Fatalf("unexpected error response: %d %+v", rr.Code, body)
	}
}
