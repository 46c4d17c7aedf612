package controllers

import (
	"context"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"
)

type SearchService interface {
	Search(ctx context.Context, req searcher.Request) ([]string, error)
	Partitions() []catalog.Partition
}
