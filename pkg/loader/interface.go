package loader

import (
	"context"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
)

type DataSource interface {
	ReadData(ctx context.Context, p catalog.Partition) ([]byte, error)
}

type IndexReader interface {
	ReadIndex(ctx context.Context, p catalog.Partition) ([]byte, error)
}

type LoadObserver interface {
	ObserveLoad(partition string, took time.Duration)
}
