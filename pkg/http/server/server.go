package http_server

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New returns a server listening on config.Port. It is shut down once ctx is done.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv
}
