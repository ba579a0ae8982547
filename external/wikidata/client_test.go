package wikidata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/football-archive/pipeline/internal/platform/logging"
	"github.com/football-archive/pipeline/internal/platform/resilience"
	"github.com/football-archive/pipeline/internal/usecase"
)

const todiboResponse = `{
  "head": {"vars": ["item", "labelEN", "labelJA", "dob"]},
  "results": {"bindings": [
    {
      "item": {"type": "uri", "value": "http://www.wikidata.org/entity/Q47499785"},
      "labelEN": {"type": "literal", "xml:lang": "en", "value": "Jean-Clair Todibo"},
      "dob": {"type": "literal", "value": "1999-12-30T00:00:00Z"}
    },
    {
      "item": {"type": "uri", "value": "http://www.wikidata.org/entity/Q47499785"},
      "labelJA": {"type": "literal", "xml:lang": "ja", "value": "ジャン＝クレール・トディボ"},
      "dob": {"type": "literal", "value": "1999-12-30T00:00:00Z"}
    }
  ]}
}`

func noSleepRetry(attempts int) resilience.RetryPolicy {
	return resilience.RetryPolicy{
		MaxAttempts: attempts,
		Sleep:       func(context.Context, time.Duration) error { return nil },
	}
}

func newTestClient(server *httptest.Server, cfg ClientConfig) *Client {
	cfg.HTTPClient = server.Client()
	cfg.Endpoint = server.URL
	cfg.Logger = logging.NewNop()
	return NewClient(cfg)
}

func TestClient_LookupPlayer_MergesRowsPerEntity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if !strings.Contains(query, `"Jean-Clair Todibo"@en`) {
			t.Errorf("query does not match the label: %s", query)
		}
		if !strings.Contains(query, `"1999-12-30"`) {
			t.Errorf("query does not filter the birth date: %s", query)
		}
		if got := r.Header.Get("User-Agent"); got != "archive-test/1.0" {
			t.Errorf("unexpected user agent: %q", got)
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(todiboResponse))
	}))
	defer server.Close()

	client := newTestClient(server, ClientConfig{UserAgent: "archive-test/1.0", Retry: noSleepRetry(1)})
	got, err := client.LookupPlayer(context.Background(), " Jean-Clair  Todibo ", "1999/12/30")
	if err != nil {
		t.Fatalf("LookupPlayer error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got=%d", len(got))
	}
	if got[0].ID != "Q47499785" {
		t.Fatalf("unexpected id: %s", got[0].ID)
	}
	if got[0].LabelJA != "ジャン＝クレール・トディボ" || got[0].LabelEN != "Jean-Clair Todibo" {
		t.Fatalf("labels not merged: %+v", got[0])
	}
	if got[0].BirthDate != "1999-12-30" {
		t.Fatalf("unexpected birth date: %s", got[0].BirthDate)
	}
}

func TestClient_LookupPlayer_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":{"bindings":[]}}`))
	}))
	defer server.Close()

	client := newTestClient(server, ClientConfig{Retry: noSleepRetry(3)})
	got, err := client.LookupPlayer(context.Background(), "Nobody Known", "2000-01-01")
	if err != nil {
		t.Fatalf("LookupPlayer error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got=%d", len(got))
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got=%d", calls.Load())
	}
}

func TestClient_LookupPlayer_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server, ClientConfig{Retry: noSleepRetry(3)})
	_, err := client.LookupPlayer(context.Background(), "Some Player", "2000-01-01")
	if err == nil {
		t.Fatalf("expected error")
	}
	if isTransient(err) {
		t.Fatalf("client error must not be transient: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got=%d", calls.Load())
	}
}

func TestClient_LookupPlayer_CachesSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(todiboResponse))
	}))
	defer server.Close()

	client := newTestClient(server, ClientConfig{Retry: noSleepRetry(1), CacheTTL: time.Hour})
	for i := 0; i < 3; i++ {
		if _, err := client.LookupPlayer(context.Background(), "Jean-Clair Todibo", "1999-12-30"); err != nil {
			t.Fatalf("LookupPlayer error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got=%d", calls.Load())
	}
}

func TestClient_LookupPlayer_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server, ClientConfig{
		Retry: noSleepRetry(1),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.LookupPlayer(context.Background(), "Some Player", "2000-01-01")
		if !isTransient(err) {
			t.Fatalf("expected transient error, got %v", err)
		}
	}
	_, err := client.LookupPlayer(context.Background(), "Some Player", "2000-01-01")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got=%d", calls.Load())
	}
}

func TestClient_LookupPlayer_RequiresKey(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	_, err := client.LookupPlayer(context.Background(), "Some Player", "unknown")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEscapeLiteral(t *testing.T) {
	t.Parallel()

	got := escapeLiteral(`N'Golo "The" \ Kanté` + "\n")
	want := `N'Golo \"The\" \\ Kanté `
	if got != want {
		t.Fatalf("escapeLiteral=%q want=%q", got, want)
	}
}
