package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"
)

type Searcher interface {
	Search(ctx context.Context, req searcher.Request) ([]string, error)
	Partitions() []catalog.Partition
}

type QueryCache interface {
	GetOrCompute(ctx context.Context, req searcher.Request, compute func(ctx context.Context) ([]string, error)) ([]string, bool, error)
}

type SearchObserver interface {
	ObserveSearch(outcome string, cacheStatus string, results int, took time.Duration)
}
