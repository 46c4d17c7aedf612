package router_helper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouteGroup(t *testing.T) {
	router := httprouter.New()
	group := NewRouteGroup(router, "/api")

	group.GET("/partitions", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	group.Group("/v1").POST("/search", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
	})
	group.Handler(http.MethodGet, "/raw", http.NotFoundHandler())

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/api/partitions", http.StatusOK},
		{http.MethodPost, "/api/v1/search", http.StatusCreated},
		{http.MethodGet, "/api/raw", http.StatusNotFound},
		{http.MethodGet, "/partitions", http.StatusNotFound},
		{http.MethodPost, "/api/partitions", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.target)
	}
}
