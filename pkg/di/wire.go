//go:build wireinject

//go:generate wire
package di

import (
	"context"
	"net/http"

	"github.com/lintang-b-s/settlement-search/pkg/cache"
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	cache_di "github.com/lintang-b-s/settlement-search/pkg/di/cache"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"
	shortcontext "github.com/lintang-b-s/settlement-search/pkg/di/context"
	kv_di "github.com/lintang-b-s/settlement-search/pkg/di/kv"
	logger_di "github.com/lintang-b-s/settlement-search/pkg/di/logger"
	metrics_di "github.com/lintang-b-s/settlement-search/pkg/di/metrics"
	searcher_di "github.com/lintang-b-s/settlement-search/pkg/di/searcher"
	searchHttp "github.com/lintang-b-s/settlement-search/pkg/http"
	"github.com/lintang-b-s/settlement-search/pkg/http/http-router/controllers"
	http_server "github.com/lintang-b-s/settlement-search/pkg/http/server"
	"github.com/lintang-b-s/settlement-search/pkg/http/usecases"
	"github.com/lintang-b-s/settlement-search/pkg/index"
	"github.com/lintang-b-s/settlement-search/pkg/metrics"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var defaultSet = wire.NewSet(
	shortcontext.New,
	config.FromPath,
	logger_di.New,
	kv_di.NewDataStore,
	kv_di.New,
	metrics_di.New,
	searcher_di.NewCatalog,
	searcher_di.NewEngine,
)

var querySet = wire.NewSet(
	defaultSet,
	searcher_di.NewLoader,
	searcher_di.New,
)

var searcherSet = wire.NewSet(
	querySet,
	cache_di.New,
	NewSearcherService,
	NewSearchAPIServer,
)

var indexerSet = wire.NewSet(
	defaultSet,
	cache_di.New,
	searcher_di.NewBuilder,
	wire.Struct(new(Indexer), "*"),
)

// Indexer. everything cmd/indexing needs. Cache is nil when the query cache is disabled.
type Indexer struct {
	Ctx     context.Context
	Config  *config.Config
	Log     *zap.Logger
	Catalog *catalog.Catalog
	Builder *index.Builder
	Cache   *cache.QueryCache
}

func NewSearcherService(log *zap.Logger, s *searcher.Searcher, c *cache.QueryCache,
	m *metrics.Metrics) controllers.SearchService {
	svc := usecases.New(log, s).WithObserver(m)
	if c != nil {
		svc = svc.WithCache(c)
	}
	return svc
}

func NewSearchAPIServer(ctx context.Context, log *zap.Logger, cfg *config.Config,
	searchService controllers.SearchService, m *metrics.Metrics) (*searchHttp.Server, error) {
	api := searchHttp.NewServer(log)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = m.Handler()
	}

	apiService, err := api.Use(
		ctx, http_server.Config{Port: cfg.API.Port, Timeout: cfg.API.Timeout}, searchService, metricsHandler,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}

func InitializeSearcherService(path config.Path) (*searchHttp.Server, func(), error) {

	panic(wire.Build(searcherSet))
}

func InitializeSearcher(path config.Path) (*searcher.Searcher, func(), error) {

	panic(wire.Build(querySet))
}

func InitializeIndexer(path config.Path) (*Indexer, func(), error) {

	panic(wire.Build(indexerSet))
}
