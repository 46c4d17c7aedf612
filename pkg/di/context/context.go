package context

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context canceled on SIGINT or SIGTERM.
func New() (context.Context, func(), error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx, stop, nil
}
