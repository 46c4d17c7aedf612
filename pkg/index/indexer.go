package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg"
	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/concurrent"
	"github.com/lintang-b-s/settlement-search/pkg/datastructure"
	"github.com/lintang-b-s/settlement-search/pkg/fuzzy"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Builder builds the index artifact of catalog partitions from their raw settlement lists.
type Builder struct {
	catalog  *catalog.Catalog
	data     DataSource
	indexes  IndexWriter
	engine   *fuzzy.Engine
	log      *zap.Logger
	observer BuildObserver
	progress io.Writer
	workers  int
}

func NewBuilder(cat *catalog.Catalog, data DataSource, indexes IndexWriter, engine *fuzzy.Engine,
	log *zap.Logger) *Builder {
	return &Builder{
		catalog: cat,
		data:    data,
		indexes: indexes,
		engine:  engine,
		log:     log,
		workers: runtime.NumCPU(),
	}
}

// WithObserver reports every build outcome to o.
func (b *Builder) WithObserver(o BuildObserver) *Builder {
	b.observer = o
	return b
}

// WithProgress draws a progress bar on w while BuildAll and BuildCountry run.
func (b *Builder) WithProgress(w io.Writer) *Builder {
	b.progress = w
	return b
}

// WithWorkers sets how many partitions BuildAll and BuildCountry build at once.
func (b *Builder) WithWorkers(n int) *Builder {
	b.workers = n
	return b
}

// Build (re)builds the index artifact of one partition and overwrites the previous one.
func (b *Builder) Build(ctx context.Context, id catalog.PartitionID) error {
	start := time.Now()
	records, err := b.build(ctx, id)

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		b.log.Error("building partition index failed", zap.String("partition", id.String()), zap.Error(err))
	} else {
		b.log.Info("partition index built", zap.String("partition", id.String()),
			zap.Int("records", records), zap.Duration("took", time.Since(start)))
	}
	if b.observer != nil {
		b.observer.ObserveBuild(id.String(), outcome, time.Since(start))
	}
	return err
}

func (b *Builder) build(ctx context.Context, id catalog.PartitionID) (int, error) {
	p, err := b.catalog.Lookup(id)
	if err != nil {
		return 0, pkg.WrapErrorf(err, pkg.ErrDataNotFound, "partition %s is not in the catalog", id)
	}

	raw, err := b.data.ReadData(ctx, p)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, pkg.WrapErrorf(err, pkg.ErrDataNotFound, "raw data of partition %s", id)
	}

	records, err := datastructure.DecodeSettlements(raw)
	if err != nil {
		return 0, pkg.WrapErrorf(err, pkg.ErrMalformedData, "raw data of partition %s", id)
	}

	idx, err := b.engine.BuildIndex(datastructure.Names(records))
	if err != nil {
		return 0, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "build index of partition %s", id)
	}

	blob, err := fuzzy.Encode(idx)
	if err != nil {
		return 0, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "encode index of partition %s", id)
	}

	if err := b.indexes.WriteIndex(ctx, p, blob); err != nil {
		return 0, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "persist index of partition %s", id)
	}
	return len(records), nil
}

// BuildCountry builds every partition of country. a failed partition doesn't stop the others,
// all failures are returned joined.
func (b *Builder) BuildCountry(ctx context.Context, country catalog.Country) error {
	kinds, err := b.catalog.Kinds(country)
	if err != nil {
		return pkg.WrapErrorf(err, pkg.ErrDataNotFound, "country %s is not in the catalog", country)
	}
	ids := make([]catalog.PartitionID, 0, len(kinds))
	for _, kind := range kinds {
		ids = append(ids, catalog.NewPartitionID(country, kind))
	}
	return b.buildMany(ctx, ids, fmt.Sprintf("Indexing %s settlements...", country))
}

// BuildAll builds every partition of the catalog. a failed partition doesn't stop the others,
// all failures are returned joined.
func (b *Builder) BuildAll(ctx context.Context) error {
	partitions := b.catalog.Partitions()
	ids := make([]catalog.PartitionID, 0, len(partitions))
	for _, p := range partitions {
		ids = append(ids, p.ID)
	}
	return b.buildMany(ctx, ids, "Indexing settlements...")
}

func (b *Builder) buildMany(ctx context.Context, ids []catalog.PartitionID, description string) error {
	var bar *progressbar.ProgressBar
	if b.progress != nil {
		bar = progressbar.NewOptions(len(ids),
			progressbar.OptionSetWriter(b.progress),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan]"+description),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	errs := concurrent.Map(b.workers, ids, func(id catalog.PartitionID) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := b.Build(ctx, id)
		if bar != nil {
			_ = bar.Add(1)
		}
		return err
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(b.progress)
	}
	return errors.Join(errs...)
}
