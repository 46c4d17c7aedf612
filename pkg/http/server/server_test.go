package http_server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := New(ctx, http.NotFoundHandler(), Config{Port: 0, Timeout: time.Second})
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()

	// give ListenAndServe a moment before shutting down
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.True(t, errors.Is(err, http.ErrServerClosed), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server was not shut down")
	}
}
