package api

import (
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusBadRequest, "invalid_field", "unknown field", "req-1")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error == nil || env.Error.Code != "invalid_field" || env.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAttachmentHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "kpi-report.pdf", "application/pdf", []byte("%PDF-1.4"))

	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=kpi-report.pdf" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAttachmentNonASCIIFilename(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "отчёт.pdf", "application/pdf", []byte("x"))

	got := rec.Header().Get("Content-Disposition")
	_, params, err := mime.ParseMediaType(got)
	if err != nil {
		t.Fatalf("parse disposition %q: %v", got, err)
	}
	if params["filename"] != "отчёт.pdf" {
		t.Fatalf("expected round-tripped filename, got %q from %q", params["filename"], got)
	}
	if strings.Contains(got, `\u`) {
		t.Fatalf("expected RFC 2231 encoding, got %q", got)
	}
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]float64{"percentage": math.Inf(1)}, "req-9")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("expected a JSON body, got %v", err)
	}
	if env.Success || env.Error == nil || env.Error.Code != "internal_error" || env.RequestID != "req-9" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Value float64 `json:"value"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"value": 12.5}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"value": 1, "extra": true}`, wantErr: true},
		{name: "trailing object", body: `{"value": 1}{"value": 2}`, wantErr: true},
		{name: "wrong type", body: `{"value": "ten"}`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst payload
			err := DecodeJSON(req, &dst)
			if tc.wantErr && err == nil {
				t.Fatal("expected decode error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var dst payload
	if err := DecodeJSON(req, &dst); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  Page
	}{
		{query: "", want: Page{Limit: 20}},
		{query: "limit=5&offset=10", want: Page{Limit: 5, Offset: 10}},
		{query: "limit=500", want: Page{Limit: 100}},
		{query: "limit=-1&offset=-3", want: Page{Limit: 20}},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		if got := ParsePage(req, 20, 100); got != tc.want {
			t.Fatalf("query %q: expected %+v, got %+v", tc.query, tc.want, got)
		}
	}
}
