package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg"
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSearcher struct {
	calls   int
	results []string
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, _ searcher.Request) ([]string, error) {
	f.calls++
	return f.results, f.err
}

func (f *fakeSearcher) Partitions() []catalog.Partition {
	return catalog.DefaultPartitions()
}

type memCache struct {
	entries map[string][]string
}

func (c *memCache) GetOrCompute(ctx context.Context, req searcher.Request, compute func(context.Context) ([]string, error)) ([]string, bool, error) {
	if names, ok := c.entries[req.Query]; ok {
		return names, true, nil
	}
	names, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	c.entries[req.Query] = names
	return names, false, nil
}

type observation struct {
	outcome string
	cache   string
	results int
}

type recorder struct {
	seen []observation
}

func (r *recorder) ObserveSearch(outcome string, cacheStatus string, results int, _ time.Duration) {
	r.seen = append(r.seen, observation{outcome, cacheStatus, results})
}

func TestSearchWithoutCache(t *testing.T) {
	fs := &fakeSearcher{results: []string{"Pezinok"}}
	rec := &recorder{}
	svc := New(zap.NewNop(), fs).WithObserver(rec)

	got, err := svc.Search(context.Background(), searcher.Request{Query: "pezi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pezinok"}, got)
	assert.Equal(t, []observation{{OUTCOME_OK, CACHE_DISABLED, 1}}, rec.seen)
	assert.Len(t, svc.Partitions(), 2)
}

func TestSearchWithCache(t *testing.T) {
	fs := &fakeSearcher{results: []string{"Čierna"}}
	rec := &recorder{}
	svc := New(zap.NewNop(), fs).
		WithCache(&memCache{entries: map[string][]string{}}).
		WithObserver(rec)

	for i := 0; i < 2; i++ {
		got, err := svc.Search(context.Background(), searcher.Request{Query: "Čierna"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Čierna"}, got)
	}
	assert.Equal(t, 1, fs.calls)
	assert.Equal(t, []observation{
		{OUTCOME_OK, CACHE_MISS, 1},
		{OUTCOME_OK, CACHE_HIT, 1},
	}, rec.seen)
}

func TestSearchOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		results []string
		err     error
		want    string
	}{
		{"zero result", nil, nil, OUTCOME_ZERO_RESULT},
		{"invalid", nil, pkg.NewErrorf(pkg.ErrInvalidQuery, "empty"), OUTCOME_INVALID},
		{"unavailable", nil, pkg.NewErrorf(pkg.ErrPartitionUnavailable, "gone"), OUTCOME_UNAVAILABLE},
		{"error", nil, errors.New("boom"), OUTCOME_ERROR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			svc := New(zap.NewNop(), &fakeSearcher{results: tt.results, err: tt.err}).WithObserver(rec)

			_, err := svc.Search(context.Background(), searcher.Request{Query: "x"})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			require.Len(t, rec.seen, 1)
			assert.Equal(t, tt.want, rec.seen[0].outcome)
		})
	}
}
