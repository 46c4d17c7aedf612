package router_helper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers handlers on router under a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

// Group returns a nested group, /api + /v1 -> /api/v1.
func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(g.router, g.join(prefix))
}

func (g *RouteGroup) GET(p string, handle httprouter.Handle) {
	g.router.GET(g.join(p), handle)
}

func (g *RouteGroup) POST(p string, handle httprouter.Handle) {
	g.router.POST(g.join(p), handle)
}

func (g *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	g.router.Handle(method, g.join(p), handle)
}

func (g *RouteGroup) Handler(method, p string, handler http.Handler) {
	g.router.Handler(method, g.join(p), handler)
}

func (g *RouteGroup) join(p string) string {
	joined := path.Join(g.prefix, p)
	// path.Join drops the trailing slash which httprouter treats as a different route
	if len(p) > 1 && p[len(p)-1] == '/' {
		joined += "/"
	}
	return joined
}
