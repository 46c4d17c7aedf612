package http_router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	http_server "github.com/lintang-b-s/settlement-search/pkg/http/server"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	panics bool
}

func (s stubService) Search(_ context.Context, req searcher.Request) ([]string, error) {
	if s.panics {
		panic("index exploded")
	}
	return []string{req.Query}, nil
}

func (s stubService) Partitions() []catalog.Partition {
	return catalog.DefaultPartitions()
}

func newHandler(svc stubService) http.Handler {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("settlement_search_queries_total 1\n"))
	})
	return NewAPI(zap.NewNop()).Handler(http_server.Config{Port: 6060, Timeout: 5 * time.Second}, svc, metrics)
}

func TestHandlerRoutes(t *testing.T) {
	h := newHandler(stubService{})

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		ctype    string
		want     int
		contains string
	}{
		{"heartbeat", http.MethodGet, "/healthz", "", "", http.StatusOK, "."},
		{"search", http.MethodPost, "/api/search", `{"query":"Pezinok"}`, "application/json", http.StatusOK, "Pezinok"},
		{"search with charset", http.MethodPost, "/api/search", `{"query":"Pezinok"}`, "application/json; charset=utf-8", http.StatusOK, "Pezinok"},
		{"search not json", http.MethodPost, "/api/search", `query=Pezinok`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"search without content type", http.MethodPost, "/api/search", `{"query":"Pezinok"}`, "", http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"partitions", http.MethodGet, "/api/partitions", "", "", http.StatusOK, "village"},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK, "settlement_search_queries_total"},
		{"swagger doc", http.MethodGet, "/swagger/doc.json", "", "", http.StatusOK, "/api/search"},
		{"unknown route", http.MethodGet, "/api/nope", "", "", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	h := newHandler(stubService{panics: true})

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"Pezinok"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_server_error")
	assert.NotContains(t, rec.Body.String(), "index exploded")
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"x-real-ip", map[string]string{"X-Real-IP": "10.0.0.7"}, "10.0.0.7"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "203.0.113.9"},
		{"garbage kept remote addr", map[string]string{"X-Forwarded-For": "not-an-ip"}, "192.0.2.1:1234"},
		{"no header", nil, "192.0.2.1:1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		}
	})
	rec := httptest.NewRecorder()
	Timeout(20*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "request timeout")
}
