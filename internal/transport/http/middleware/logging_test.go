package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type recordedRequest struct {
	method string
	route  string
	status int
}

type requestLog struct {
	entries []recordedRequest
}

func (l *requestLog) Record(method, route string, status int, _ time.Duration) {
	l.entries = append(l.entries, recordedRequest{method: method, route: route, status: status})
}

func TestLoggerRecordsRoutePattern(t *testing.T) {
	log := &requestLog{}
	router := chi.NewRouter()
	router.Use(Logger(log))
	router.Delete("/employees/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/employees/abc", nil))

	if len(log.entries) != 1 {
		t.Fatalf("expected one record, got %d", len(log.entries))
	}
	got := log.entries[0]
	if got.method != http.MethodDelete || got.route != "/employees/{id}" || got.status != http.StatusAccepted {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestBodyLimitRejectsLargePayload(t *testing.T) {
	handler := BodyLimit(8)(noContent())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value": 123456789}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(true)(noContent())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected nosniff header")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatal("expected no-store for api routes")
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("expected HSTS in production")
	}
}
