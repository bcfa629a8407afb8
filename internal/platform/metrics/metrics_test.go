package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorRecord(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/v1/state", http.StatusOK, 5*time.Millisecond)
	c.Record(http.MethodGet, "/api/v1/state", http.StatusOK, 7*time.Millisecond)
	c.Record(http.MethodPost, "/api/v1/reports/export", http.StatusTooManyRequests, time.Millisecond)
	c.Record(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/api/v1/state", "200")); got != 2 {
		t.Fatalf("expected 2 state requests, got %v", got)
	}
	if got := testutil.ToFloat64(c.rateLimited); got != 1 {
		t.Fatalf("expected 1 rate limited request, got %v", got)
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "unmatched", "404")); got != 1 {
		t.Fatalf("expected unmatched route label, got %v", got)
	}
}

func TestCollectorDomainCounters(t *testing.T) {
	c := New()
	c.RecordRecalculation("metric.add")
	c.RecordRecalculation("metric.add")
	c.RecordExport("failed")

	if got := testutil.ToFloat64(c.recalculations.WithLabelValues("metric.add")); got != 2 {
		t.Fatalf("expected 2 recalculations, got %v", got)
	}
	if got := testutil.ToFloat64(c.exports.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed export, got %v", got)
	}
}

func TestCollectorHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.RecordRecalculation("load")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `kpi_recalculations_total{trigger="load"} 1`) {
		t.Fatalf("expected recalculation counter in output, got %s", rec.Body.String())
	}
}

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *Collector
	c.Record("GET", "/api/v1/state", 200, time.Millisecond)
	c.RecordRecalculation("load")
	c.RecordExport("completed")
}
