package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	r := mux.NewRouter()
	r.Use(RequestID())
	r.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.Len(t, seen, 36)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	r := mux.NewRouter()
	r.Use(RequestID())
	r.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestLogging_WarnsOnServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	r := mux.NewRouter()
	r.Use(Logging(logger))
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	r.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Contains(t, buf.String(), "http_request")
	assert.Contains(t, buf.String(), "status=502")
}

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"http://localhost:5173", ""}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"empty origin", "", true},
		{"prefix match", "http://localhost:5173", true},
		{"foreign", "https://evil.example", false},
		{"empty prefix never matches", "http://other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OriginAllowed(tt.origin, allowed))
		})
	}
}

func TestOriginChecker(t *testing.T) {
	check := OriginChecker([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))
}
