package trace

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"diario/internal/metrics"
)

func TestMiddleware_RequestID(t *testing.T) {
	var seen string
	h := NewMiddleware(nil, nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if _, err := uuid.Parse(seen); err != nil {
			t.Fatalf("request id %q is not a uuid", seen)
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("header = %q, context = %q", rec.Header().Get(RequestIDHeader), seen)
		}
	})

	t.Run("propagated when valid", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, id)
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen != id {
			t.Errorf("request id = %q, want %q", seen, id)
		}
	})

	t.Run("replaced when garbage", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen == "<script>" {
			t.Error("untrusted request id was propagated")
		}
	})
}

func TestMiddleware_RecordsMetricsPerRoute(t *testing.T) {
	m := metrics.New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/total", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /delete/{item_id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	h := NewMiddleware(func(*http.Request) string { return "127.0.0.1" }, m).Middleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/total", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/delete/abc", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`diario_http_requests_total{code="200",method="GET",route="GET /api/total"} 1`,
		`diario_http_requests_total{code="404",method="POST",route="POST /delete/{item_id}"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	rw.Write([]byte("body"))
	rw.WriteHeader(http.StatusInternalServerError)
	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want 200 once the body was written", rw.statusCode)
	}
}
