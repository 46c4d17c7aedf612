package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch("ok", "miss", 3, 10*time.Millisecond)
	m.ObserveSearch("ok", "hit", 3, time.Millisecond)
	m.ObserveSearch("invalid", "none", 0, time.Millisecond)
	m.ObserveBuild("slovakia/city", "success", time.Second)
	m.ObserveLoad("slovakia/city", time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `settlement_search_queries_total{outcome="ok"} 2`)
	assert.Contains(t, body, `settlement_search_queries_total{outcome="invalid"} 1`)
	assert.Contains(t, body, `settlement_search_index_builds_total{outcome="success",partition="slovakia/city"} 1`)
	assert.Contains(t, body, `settlement_search_partition_load_seconds_count{partition="slovakia/city"} 1`)
	assert.Contains(t, body, `settlement_search_results_count_sum 6`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveBuild("slovakia/village", "failure", time.Second)

	assert.Contains(t, scrape(t, m), `settlement_search_index_builds_total{outcome="failure",partition="slovakia/village"} 1`)
}
