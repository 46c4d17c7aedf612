package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg"
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"

	"go.uber.org/zap"
)

const (
	OUTCOME_OK          = "ok"
	OUTCOME_ZERO_RESULT = "zero_result"
	OUTCOME_INVALID     = "invalid"
	OUTCOME_UNAVAILABLE = "unavailable"
	OUTCOME_ERROR       = "error"

	CACHE_HIT      = "hit"
	CACHE_MISS     = "miss"
	CACHE_DISABLED = "disabled"
)

type SearcherService struct {
	log      *zap.Logger
	searcher Searcher
	cache    QueryCache
	observer SearchObserver
}

func New(log *zap.Logger, searcher Searcher) *SearcherService {
	return &SearcherService{
		log:      log,
		searcher: searcher,
	}
}

// WithCache serves repeated queries from cache. a nil cache disables caching.
func (s *SearcherService) WithCache(cache QueryCache) *SearcherService {
	s.cache = cache
	return s
}

func (s *SearcherService) WithObserver(o SearchObserver) *SearcherService {
	s.observer = o
	return s
}

func (s *SearcherService) Search(ctx context.Context, req searcher.Request) ([]string, error) {
	start := time.Now()

	var (
		names []string
		err   error
	)
	cacheStatus := CACHE_DISABLED
	if s.cache != nil {
		var hit bool
		names, hit, err = s.cache.GetOrCompute(ctx, req, func(ctx context.Context) ([]string, error) {
			return s.searcher.Search(ctx, req)
		})
		cacheStatus = CACHE_MISS
		if hit {
			cacheStatus = CACHE_HIT
		}
	} else {
		names, err = s.searcher.Search(ctx, req)
	}

	took := time.Since(start)
	outcome := searchOutcome(names, err)
	if s.observer != nil {
		s.observer.ObserveSearch(outcome, cacheStatus, len(names), took)
	}

	if err != nil {
		if outcome == OUTCOME_INVALID {
			s.log.Debug("invalid search request", zap.String("query", req.Query), zap.Error(err))
		} else {
			s.log.Error("search failed", zap.String("query", req.Query), zap.Error(err))
		}
		return nil, err
	}

	s.log.Debug("search",
		zap.String("query", req.Query),
		zap.Int("results", len(names)),
		zap.String("cache", cacheStatus),
		zap.Duration("took", took))
	return names, nil
}

func (s *SearcherService) Partitions() []catalog.Partition {
	return s.searcher.Partitions()
}

func searchOutcome(names []string, err error) string {
	if err != nil {
		switch pkg.ErrorCode(err) {
		case pkg.ErrInvalidQuery:
			return OUTCOME_INVALID
		case pkg.ErrPartitionUnavailable:
			return OUTCOME_UNAVAILABLE
		default:
			return OUTCOME_ERROR
		}
	}
	if len(names) == 0 {
		return OUTCOME_ZERO_RESULT
	}
	return OUTCOME_OK
}
