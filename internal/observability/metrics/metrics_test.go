package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/health":                   "/health",
		"/v1/documents/abc-123":     "/v1/documents/{job_id}",
		"/v1/documents/export.xlsx": "/v1/documents/export.xlsx",
	}
	for in, want := range cases {
		if got := normalizePath(in); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHTTPMiddlewareRecordsStatus(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/documents", nil))
	m.RecordRejected("api", "rate_limited")

	body := scrape(t, m.Handler())
	if !strings.Contains(body, `documantra_http_requests_total{method="POST",path="/v1/documents",service="api",status="202"} 1`) {
		t.Fatalf("missing request counter in:\n%s", body)
	}
	if !strings.Contains(body, `documantra_http_rejected_total{reason="rate_limited",service="api"} 1`) {
		t.Fatalf("missing rejection counter in:\n%s", body)
	}
}

func TestWorkerMetricsCountsCategories(t *testing.T) {
	m := NewWorkerMetrics("worker")
	m.StartJob()
	m.FinishJob("worker", time.Second, "invoice", nil)
	m.StartJob()
	m.FinishJob("worker", time.Second, "invoice", errors.New("boom"))

	body := scrape(t, m.Handler())
	if !strings.Contains(body, `documantra_worker_classifications_total{category="invoice",service="worker"} 1`) {
		t.Fatalf("missing category counter in:\n%s", body)
	}
	if !strings.Contains(body, `documantra_worker_job_process_total{service="worker",status="error"} 1`) {
		t.Fatalf("missing error counter in:\n%s", body)
	}
}

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	raw, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(raw)
}
