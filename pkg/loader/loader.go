package loader

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg"
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/datastructure"
	"github.com/lintang-b-s/settlement-search/pkg/fuzzy"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadedPartition. index of a partition together with the record list it was built from.
// Index position i refers to Records[i].
type LoadedPartition struct {
	ID      catalog.PartitionID
	Index   *fuzzy.Index
	Records []datastructure.Settlement
}

type Loader struct {
	catalog  *catalog.Catalog
	data     DataSource
	indexes  IndexReader
	log      *zap.Logger
	observer LoadObserver
}

func NewLoader(cat *catalog.Catalog, data DataSource, indexes IndexReader, log *zap.Logger) *Loader {
	return &Loader{
		catalog: cat,
		data:    data,
		indexes: indexes,
		log:     log,
	}
}

// WithObserver reports the load time of every partition to o.
func (l *Loader) WithObserver(o LoadObserver) *Loader {
	l.observer = o
	return l
}

// Load fetches the index artifact and the record list of every partition in ids concurrently.
// Either every partition is returned or the first failure is; a missing, corrupt or
// mismatched artifact fails with ErrPartitionUnavailable naming the partition.
func (l *Loader) Load(ctx context.Context, ids []catalog.PartitionID) (map[catalog.PartitionID]*LoadedPartition, error) {
	partitions := make([]catalog.Partition, len(ids))
	for i, id := range ids {
		p, err := l.catalog.Lookup(id)
		if err != nil {
			return nil, pkg.WrapErrorf(err, pkg.ErrPartitionUnavailable, "partition %s", id)
		}
		partitions[i] = p
	}

	loaded := make([]*LoadedPartition, len(partitions))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range partitions {
		lp := &LoadedPartition{ID: p.ID}
		loaded[i] = lp
		start := time.Now()

		// index and records are written to different fields of lp
		g.Go(func() error {
			blob, err := l.indexes.ReadIndex(gctx, p)
			if err != nil {
				return l.unavailable(gctx, err, p.ID, "read index")
			}
			idx, err := fuzzy.Decode(blob)
			if err != nil {
				return l.unavailable(gctx, err, p.ID, "decode index")
			}
			lp.Index = idx
			if l.observer != nil {
				l.observer.ObserveLoad(p.ID.String(), time.Since(start))
			}
			return nil
		})

		g.Go(func() error {
			raw, err := l.data.ReadData(gctx, p)
			if err != nil {
				return l.unavailable(gctx, err, p.ID, "read records")
			}
			records, err := datastructure.DecodeSettlements(raw)
			if err != nil {
				return l.unavailable(gctx, err, p.ID, "decode records")
			}
			lp.Records = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[catalog.PartitionID]*LoadedPartition, len(loaded))
	for _, lp := range loaded {
		if lp.Index.Len() != len(lp.Records) {
			return nil, pkg.NewErrorf(pkg.ErrPartitionUnavailable,
				"partition %s: index covers %d records but the data has %d", lp.ID, lp.Index.Len(), len(lp.Records))
		}
		if lp.Index.Fingerprint != fuzzy.Fingerprint(datastructure.Names(lp.Records)) {
			return nil, pkg.NewErrorf(pkg.ErrPartitionUnavailable,
				"partition %s: index was built from different data, rebuild it", lp.ID)
		}
		result[lp.ID] = lp
	}

	l.log.Debug("partitions loaded", zap.Int("count", len(result)))
	return result, nil
}

func (l *Loader) unavailable(ctx context.Context, err error, id catalog.PartitionID, what string) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	l.log.Warn("partition unavailable", zap.String("partition", id.String()), zap.String("step", what), zap.Error(err))
	return pkg.WrapErrorf(err, pkg.ErrPartitionUnavailable, "partition %s: %s", id, what)
}
