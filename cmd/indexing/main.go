package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/di"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"

	"github.com/k0kubun/go-ansi"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "config file, config.yaml in the working directory when empty")
	country    = flag.String("country", "", "only rebuild the partitions of this country")
	kind       = flag.String("kind", "", "only rebuild this settlement kind, requires -country")
)

func main() {
	flag.Parse()
	if *kind != "" && *country == "" {
		log.Fatal("-kind requires -country")
	}

	indexer, cleanup, err := di.InitializeIndexer(config.Path(*configPath))
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(run(indexer, cleanup))
}

func run(indexer *di.Indexer, cleanup func()) int {
	defer cleanup()

	ctx := indexer.Ctx
	builder := indexer.Builder.WithProgress(ansi.NewAnsiStdout())

	start := time.Now()
	var err error
	switch {
	case *kind != "":
		err = builder.Build(ctx, catalog.NewPartitionID(catalog.Country(*country), catalog.Kind(*kind)))
	case *country != "":
		err = builder.BuildCountry(ctx, catalog.Country(*country))
	default:
		err = builder.BuildAll(ctx)
	}

	// even a partial rebuild may have replaced some artifacts
	if indexer.Cache != nil {
		if _, cerr := indexer.Cache.Invalidate(ctx); cerr != nil {
			indexer.Log.Error("invalidating query cache", zap.Error(cerr))
		}
	}

	if err != nil {
		indexer.Log.Error("indexing failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		return 1
	}
	indexer.Log.Info("indexing done", zap.Duration("took", time.Since(start)))
	return 0
}
