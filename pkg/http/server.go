package http

import (
	"context"
	"net/http"

	http_router "github.com/lintang-b-s/settlement-search/pkg/http/http-router"
	"github.com/lintang-b-s/settlement-search/pkg/http/http-router/controllers"
	http_server "github.com/lintang-b-s/settlement-search/pkg/http/server"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger

	g errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. it stops once ctx is done, Wait reports why.
func (s *Server) Use(
	ctx context.Context,
	config http_server.Config,

	searchService controllers.SearchService,
	metricsHandler http.Handler,

) (*Server, error) {
	server := http_router.NewAPI(s.Log)

	s.g.Go(func() error {
		return server.Run(
			ctx, config, searchService, metricsHandler,
		)
	})

	return s, nil

}

// Wait blocks until the API stopped.
func (s *Server) Wait() error {
	return s.g.Wait()
}
