package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type routes func(mux *http.ServeMux)

func (f routes) RegisterRoutes(mux *http.ServeMux) { f(mux) }

func TestHealth(t *testing.T) {
	srv := New(Options{}, stubPinger{}, zap.NewNop())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != HealthMessage {
		t.Errorf("message = %q, want %q", body.Message, HealthMessage)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if body.Version["version"] == "" {
		t.Error("version info missing")
	}
	if rec.Header().Get("X-GutWise-Version") == "" {
		t.Error("X-GutWise-Version header missing")
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	srv := New(Options{}, stubPinger{err: errors.New("closed")}, zap.NewNop())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	srv := New(Options{}, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))
	generated := rec.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(generated); err != nil {
		t.Errorf("generated request id %q is not a UUID", generated)
	}

	want := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("X-Request-Id", want)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != want {
		t.Errorf("X-Request-Id = %q, want %q", got, want)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got == "not-a-uuid" {
		t.Error("invalid request id was echoed back")
	}
}

func TestRequestIDReachesHandler(t *testing.T) {
	var seen string
	srv := New(Options{}, nil, zap.NewNop(), routes(func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/echo", func(w http.ResponseWriter, r *http.Request) {
			seen = RequestID(r.Context())
		})
	}))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/echo", nil))

	if seen == "" || seen != rec.Header().Get("X-Request-Id") {
		t.Errorf("handler saw request id %q, header %q", seen, rec.Header().Get("X-Request-Id"))
	}
}

func TestRateLimit(t *testing.T) {
	srv := New(Options{RateLimit: 1, RateBurst: 2}, nil, zap.NewNop())

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("first two requests = %v, want 200s within burst", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics status = %d, want 200 even when limited", rec.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	srv := New(Options{}, nil, zap.NewNop(), routes(func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/boom", func(http.ResponseWriter, *http.Request) {
			panic("kaboom")
		})
	}))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content-type = %q", ct)
	}
}

func TestCORS(t *testing.T) {
	srv := New(Options{}, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"X-Request-Id", "X-Total-Count"} {
		if !strings.Contains(exposed, h) {
			t.Errorf("Access-Control-Expose-Headers = %q, missing %s", exposed, h)
		}
	}

	restricted := New(Options{AllowedOrigins: []string{"https://gutwise.app"}}, nil, zap.NewNop())
	req = httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	restricted.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(Options{}, nil, zap.NewNop())
	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/", nil))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `gutwise_http_requests_total{method="GET",route="GET /api/{$}",status="200"}`) {
		t.Error("metrics missing request counter labelled by route pattern")
	}
}

func TestSwaggerDoc(t *testing.T) {
	srv := New(Options{}, nil, zap.NewNop())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"/recipes/{id}"`) {
		t.Error("doc.json missing /recipes/{id}")
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := New(Options{}, nil, zap.NewNop())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
