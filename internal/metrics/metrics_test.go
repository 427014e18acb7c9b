package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	m.RecordIntent("greeting")
	m.RecordFallback(StageClassify)
	m.RecordRejection(ReasonEmpty)
	m.ObserveCall(CallGenerate, time.Second)
	m.ObserveRetrieved(3)
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.RecordIntent("greeting")
	m.RecordIntent("greeting")
	m.RecordFallback(StageGenerate)
	m.RecordRejection(ReasonTooLong)

	if got := testutil.ToFloat64(m.IntentsTotal.WithLabelValues("greeting")); got != 2 {
		t.Fatalf("expected 2 greeting intents, got %v", got)
	}
	if got := testutil.ToFloat64(m.FallbacksTotal.WithLabelValues(StageGenerate)); got != 1 {
		t.Fatalf("expected 1 generate fallback, got %v", got)
	}
	if got := testutil.ToFloat64(m.ValidationRejections.WithLabelValues(ReasonTooLong)); got != 1 {
		t.Fatalf("expected 1 too_long rejection, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordIntent("exit")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `medibot_intents_total{intent="exit"} 1`) {
		t.Fatalf("expected intents counter in exposition, body=%s", rr.Body.String())
	}
}
