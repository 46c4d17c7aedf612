package index

import (
	"context"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
)

type DataSource interface {
	ReadData(ctx context.Context, p catalog.Partition) ([]byte, error)
}

type IndexWriter interface {
	WriteIndex(ctx context.Context, p catalog.Partition, blob []byte) error
}

type BuildObserver interface {
	ObserveBuild(partition string, outcome string, took time.Duration)
}
