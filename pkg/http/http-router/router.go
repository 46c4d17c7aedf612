package http_router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	_ "github.com/lintang-b-s/settlement-search/docs"
	"github.com/lintang-b-s/settlement-search/pkg/http/http-router/controllers"
	router_helper "github.com/lintang-b-s/settlement-search/pkg/http/http-router/router-helper"
	http_server "github.com/lintang-b-s/settlement-search/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler builds the whole middleware chain & routes. metricsHandler is mounted on /metrics when not nil.
func (api *API) Handler(
	config http_server.Config,
	searchService controllers.SearchService,
	metricsHandler http.Handler,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	group := router_helper.NewRouteGroup(router, "/api")

	searcherRoutes := controllers.New(searchService, api.log)

	searcherRoutes.Routes(group)

	router.Handler(http.MethodGet, "/swagger/*any", httpSwagger.WrapHandler)
	if metricsHandler != nil {
		router.Handler(http.MethodGet, "/metrics", metricsHandler)
	}

	return alice.New(corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels, Timeout(config.Timeout)).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	searchService controllers.SearchService,
	metricsHandler http.Handler,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(config, searchService, metricsHandler), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
