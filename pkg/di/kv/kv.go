package kv_di

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"
	"github.com/lintang-b-s/settlement-search/pkg/kvdb"
	"github.com/lintang-b-s/settlement-search/pkg/store"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// IndexStore holds the index artifacts, either flat files or a bbolt database.
type IndexStore interface {
	ReadIndex(ctx context.Context, p catalog.Partition) ([]byte, error)
	WriteIndex(ctx context.Context, p catalog.Partition, blob []byte) error
}

// NewDataStore. raw settlement lists always live in flat files under the data root.
func NewDataStore(cfg *config.Config) *store.FileStore {
	return store.NewFileStore(cfg.DataRoot)
}

// New opens the index store selected by store.backend.
func New(ctx context.Context, cfg *config.Config, files *store.FileStore, log *zap.Logger) (IndexStore, func(), error) {
	if cfg.Store.Backend != config.BACKEND_BOLT {
		return files, func() {}, nil
	}

	path := cfg.Store.BoltPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.DataRoot, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create bolt dir: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}

	bboltKV, err := kvdb.NewKVDB(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info("index store opened", zap.String("backend", config.BACKEND_BOLT), zap.String("path", path))

	cleanup := func() {
		_ = db.Close()
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		cleanup()
	}()

	return bboltKV, cleanup, nil
}
