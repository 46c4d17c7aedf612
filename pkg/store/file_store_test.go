package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartition() catalog.Partition {
	return catalog.NewPartition(catalog.NewPartitionID(catalog.Slovakia, catalog.Village),
		"data/villages.json", "indexes/villages.idx")
}

func TestFileStoreReadMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.ReadData(context.Background(), testPartition())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.ReadIndex(context.Background(), testPartition())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreWriteReadIndex(t *testing.T) {
	root := t.TempDir()
	s := NewFileStore(root)
	p := testPartition()
	ctx := context.Background()

	require.NoError(t, s.WriteIndex(ctx, p, []byte("first")))
	require.NoError(t, s.WriteIndex(ctx, p, []byte("second")))

	got, err := s.ReadIndex(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	entries, err := os.ReadDir(filepath.Join(root, "indexes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreReadData(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "villages.json"), []byte(`["Čierna"]`), 0o644))

	s := NewFileStore(root)
	got, err := s.ReadData(context.Background(), testPartition())
	require.NoError(t, err)
	assert.Equal(t, `["Čierna"]`, string(got))
}

func TestFileStoreCanceled(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReadData(ctx, testPartition())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(s.WriteIndex(ctx, testPartition(), nil), context.Canceled))
}
