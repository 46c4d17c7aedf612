package kvdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/store"

	"go.etcd.io/bbolt"
)

var (
	ErrorsKeyNotExists = fmt.Errorf("%w: key not exists", store.ErrNotFound)
)

const (
	BBOLTDB_INDEX_BUCKET = "settlementIndex"
)

// KVDB keeps index artifacts in one bbolt bucket keyed by partition id.
type KVDB struct {
	db *bbolt.DB
	sync.Mutex
}

func NewKVDB(db *bbolt.DB) (*KVDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BBOLTDB_INDEX_BUCKET))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", BBOLTDB_INDEX_BUCKET, err)
	}
	return &KVDB{db,
		sync.Mutex{}}, nil
}

func (db *KVDB) WriteIndex(ctx context.Context, p catalog.Partition, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.Lock()
	defer db.Unlock()
	return db.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_INDEX_BUCKET))
		return b.Put([]byte(p.ID.String()), blob)
	})
}

func (db *KVDB) ReadIndex(ctx context.Context, p catalog.Partition) (blob []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	err = db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_INDEX_BUCKET))
		val := b.Get([]byte(p.ID.String()))
		if val == nil {
			return fmt.Errorf("%w: %s", ErrorsKeyNotExists, p.ID)
		}
		// val is only valid inside the transaction
		blob = append([]byte(nil), val...)
		return nil
	})
	return
}

// Keys returns the ids of every stored index artifact.
func (db *KVDB) Keys() ([]string, error) {
	keys := make([]string, 0)
	err := db.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BBOLTDB_INDEX_BUCKET)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
