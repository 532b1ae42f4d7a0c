package spacyd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/resilience"
)

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: 1,
		BreakerEnabled:   false,
	})
}

func TestSplitParsesSentenceSpans(t *testing.T) {
	var capturedText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/segment" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedText = payload["text"]
		_, _ = w.Write([]byte(`{"sentences":[{"text":"Rent is due.","start":0,"end":12},{"text":"Deposit too.","start":13,"end":25}]}`))
	}))
	defer server.Close()

	client := New(server.URL, testExecutor())
	spans, err := client.Split(context.Background(), "Rent is due. Deposit too.")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if capturedText != "Rent is due. Deposit too." {
		t.Fatalf("unexpected request text: %q", capturedText)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].Text != "Deposit too." || spans[1].StartChar != 13 || spans[1].EndChar != 25 {
		t.Fatalf("unexpected span: %+v", spans[1])
	}
}

func TestSplitIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusBadRequest)
	}))
	defer server.Close()

	client := New(server.URL, testExecutor())
	_, err := client.Split(context.Background(), "text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestPingReportsFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, testExecutor())
	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping failure")
	}
}
