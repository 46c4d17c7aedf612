package searcher

import (
	"context"
	"math"
	"sort"

	"github.com/lintang-b-s/settlement-search/pkg"
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/datastructure"
	"github.com/lintang-b-s/settlement-search/pkg/fuzzy"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request. one settlement name query.
//
// Countries defaults to every catalog country and SettlementKinds to every kind valid for a
// selected country. ScoreAdjustment is subtracted from the raw score of every hit of that kind,
// so a positive value prefers the kind. Limit nil returns every match, Threshold nil uses the
// searcher default.
type Request struct {
	Query           string
	Countries       []catalog.Country
	SettlementKinds map[catalog.Country][]catalog.Kind
	ScoreAdjustment map[catalog.Kind]float64
	Limit           *int
	Threshold       *float64
}

// RankedHit. a hit of one partition after the score adjustment of its kind.
type RankedHit struct {
	datastructure.SearchHit
	Partition     catalog.PartitionID
	AdjustedScore float64

	partitionOrder int
}

type Searcher struct {
	catalog          *catalog.Catalog
	loader           PartitionLoader
	engine           *fuzzy.Engine
	log              *zap.Logger
	defaultThreshold float64
}

func NewSearcher(cat *catalog.Catalog, loader PartitionLoader, engine *fuzzy.Engine, log *zap.Logger) *Searcher {
	return &Searcher{
		catalog:          cat,
		loader:           loader,
		engine:           engine,
		log:              log,
		defaultThreshold: DEFAULT_THRESHOLD,
	}
}

// WithDefaultThreshold sets the threshold used by requests without one.
func (s *Searcher) WithDefaultThreshold(threshold float64) *Searcher {
	s.defaultThreshold = threshold
	return s
}

// Partitions lists the catalog in order.
func (s *Searcher) Partitions() []catalog.Partition {
	return s.catalog.Partitions()
}

// Search returns the names of the settlements matching req.Query, best first.
func (s *Searcher) Search(ctx context.Context, req Request) ([]string, error) {
	hits, err := s.SearchHits(ctx, req)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(hits))
	for i, hit := range hits {
		names[i] = hit.Record.Name
	}
	return names, nil
}

// SearchHits is Search keeping the partition & scores of every hit.
func (s *Searcher) SearchHits(ctx context.Context, req Request) ([]RankedHit, error) {
	ids, threshold, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	loaded, err := s.loader.Load(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := loaded[id]; !ok {
			return nil, pkg.NewErrorf(pkg.ErrPartitionUnavailable, "partition %s was not loaded", id)
		}
	}

	// partitions are independent, match them in parallel. results keep the catalog order.
	perPartition := make([][]RankedHit, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		partition := loaded[id]
		adjustment := req.ScoreAdjustment[id.Kind]
		order := s.catalog.Order(id)

		g.Go(func() error {
			hits, err := NewMatcher(s.engine, partition).Search(req.Query, threshold)
			if err != nil {
				return err
			}
			ranked := make([]RankedHit, len(hits))
			for j, hit := range hits {
				ranked[j] = RankedHit{
					SearchHit:      hit,
					Partition:      id,
					AdjustedScore:  hit.Score - adjustment,
					partitionOrder: order,
				}
			}
			perPartition[i] = ranked
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]RankedHit, 0)
	for _, ranked := range perPartition {
		all = append(all, ranked...)
	}

	// ties: catalog partition order, then record position
	sort.Slice(all, func(i, j int) bool {
		if all[i].AdjustedScore != all[j].AdjustedScore {
			return all[i].AdjustedScore < all[j].AdjustedScore
		}
		if all[i].partitionOrder != all[j].partitionOrder {
			return all[i].partitionOrder < all[j].partitionOrder
		}
		return all[i].Position < all[j].Position
	})

	if req.Limit != nil && *req.Limit < len(all) {
		all = all[:*req.Limit]
	}

	s.log.Debug("settlement search", zap.String("query", req.Query), zap.Int("partitions", len(ids)),
		zap.Int("hits", len(all)))
	return all, nil
}

// resolve validates req and returns the partitions to search in catalog order and the threshold.
func (s *Searcher) resolve(req Request) ([]catalog.PartitionID, float64, error) {
	if fuzzy.Normalize(req.Query) == "" {
		return nil, 0, pkg.NewErrorf(pkg.ErrInvalidQuery, "query must contain at least one letter or digit")
	}

	threshold := s.defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if math.IsNaN(threshold) || threshold < MIN_THRESHOLD || threshold > MAX_THRESHOLD {
		return nil, 0, pkg.NewErrorf(pkg.ErrInvalidQuery, "threshold must be within [%v, %v]", MIN_THRESHOLD, MAX_THRESHOLD)
	}

	if req.Limit != nil && *req.Limit < 0 {
		return nil, 0, pkg.NewErrorf(pkg.ErrInvalidQuery, "limit must not be negative")
	}

	for kind, adjustment := range req.ScoreAdjustment {
		if !s.catalog.HasKind(kind) {
			return nil, 0, pkg.NewErrorf(pkg.ErrInvalidQuery, "score adjustment for unknown settlement kind %q", kind)
		}
		if math.IsNaN(adjustment) || math.IsInf(adjustment, 0) {
			return nil, 0, pkg.NewErrorf(pkg.ErrInvalidQuery, "score adjustment of %q must be a finite number", kind)
		}
	}

	ids, err := s.catalog.Resolve(req.Countries, req.SettlementKinds)
	if err != nil {
		return nil, 0, pkg.WrapErrorf(err, pkg.ErrInvalidQuery, "invalid partition selection")
	}
	return ids, threshold, nil
}
