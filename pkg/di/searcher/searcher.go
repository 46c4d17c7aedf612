package searcher_di

import (
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"
	kv_di "github.com/lintang-b-s/settlement-search/pkg/di/kv"
	"github.com/lintang-b-s/settlement-search/pkg/fuzzy"
	"github.com/lintang-b-s/settlement-search/pkg/index"
	"github.com/lintang-b-s/settlement-search/pkg/loader"
	"github.com/lintang-b-s/settlement-search/pkg/metrics"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"
	"github.com/lintang-b-s/settlement-search/pkg/store"

	"go.uber.org/zap"
)

func NewCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.New(cfg.Catalog)
}

func NewEngine() *fuzzy.Engine {
	return fuzzy.NewEngine(fuzzy.DefaultOptions())
}

func NewLoader(cat *catalog.Catalog, data *store.FileStore, indexes kv_di.IndexStore, m *metrics.Metrics,
	log *zap.Logger) *loader.Loader {
	return loader.NewLoader(cat, data, indexes, log).WithObserver(m)
}

func New(cfg *config.Config, cat *catalog.Catalog, l *loader.Loader, engine *fuzzy.Engine,
	log *zap.Logger) *searcher.Searcher {
	return searcher.NewSearcher(cat, l, engine, log).WithDefaultThreshold(cfg.Search.DefaultThreshold)
}

func NewBuilder(cat *catalog.Catalog, data *store.FileStore, indexes kv_di.IndexStore, engine *fuzzy.Engine,
	m *metrics.Metrics, log *zap.Logger) *index.Builder {
	return index.NewBuilder(cat, data, indexes, engine, log).WithObserver(m)
}
