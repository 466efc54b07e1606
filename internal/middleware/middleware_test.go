package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	handler := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/loltracker.v1.LolTracker/GetProfile", nil))

	header := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("%s = %q is not a uuid: %v", RequestIDHeader, header, err)
	}
	if seen != header {
		t.Errorf("context id = %q, header = %q", seen, header)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	handler := RequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("%s = %q, want req-123", RequestIDHeader, got)
	}

	logs := buf.String()
	if strings.Count(logs, `"request_id":"req-123"`) != 2 {
		t.Errorf("expected handler and completion lines tagged with the request id, got:\n%s", logs)
	}
	if !strings.Contains(logs, `"status":404`) || !strings.Contains(logs, `"level":"warn"`) {
		t.Errorf("completion line missing status or level:\n%s", logs)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	if id := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Errorf("GetRequestID = %q, want empty", id)
	}
}
