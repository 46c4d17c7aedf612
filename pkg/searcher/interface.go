package searcher

import (
	"context"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/loader"
)

type PartitionLoader interface {
	Load(ctx context.Context, ids []catalog.PartitionID) (map[catalog.PartitionID]*loader.LoadedPartition, error)
}
