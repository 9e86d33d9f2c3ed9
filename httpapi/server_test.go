package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ivanbrykalov/lecar/lecar"
)

func newTestServer() *Server {
	core := lecar.New[string, string](lecar.Options{
		CapacityMain: 4, CapacityGhostLFU: 2, CapacityGhostLRU: 2, Seed: 1,
	})
	return New(core, nil)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if rec.Body.String() != healthBody {
		t.Fatalf("want %q, got %q", healthBody, rec.Body.String())
	}
}

func TestInsertThenGet(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	h := s.Handler()

	body, _ := json.Marshal(kvBody{Key: "a", Value: "1"})
	req := httptest.NewRequest(http.MethodPost, "/cache", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("insert: want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/cache/a", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: want 200, got %d", rec.Code)
	}
	var got kvBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Key != "a" || got.Value != "1" {
		t.Fatalf("want {a 1}, got %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/cache/missing", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestInsertMalformedBody(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/cache", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}
