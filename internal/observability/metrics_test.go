package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/teams/{teamID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := HTTPMetricsMiddleware(metrics)(mux)

	for _, path := range []string{"/v1/teams/a", "/v1/teams/b"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "GET /v1/teams/{teamID}", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests on route pattern, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")); got != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", got)
	}
}

func TestMetrics_ObserveDecisionAndJob(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveDecision("referee", true, true)
	metrics.ObserveDecision("referee", true, true)
	metrics.ObserveJob("suspension-serve", nil)
	metrics.ObserveJob("suspension-serve", errors.New("boom"))

	if got := testutil.ToFloat64(metrics.EditDecisionsTotal.WithLabelValues("referee", "true", "true")); got != 2 {
		t.Fatalf("expected 2 decisions, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("suspension-serve", "error")); got != 1 {
		t.Fatalf("expected 1 failed job run, got %v", got)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveDecision("admin", true, false)
	nilMetrics.ObserveJob("x", nil)
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	metrics := NewMetrics(nil)
	metrics.ObserveJob("session-purge", nil)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `minivoetbal_job_runs_total{job="session-purge",status="ok"} 1`) {
		t.Fatalf("expected job counter in exposition, got:\n%s", rec.Body.String())
	}
}
