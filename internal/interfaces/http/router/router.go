package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Route describes one mounted endpoint
type Route struct {
	Group  string
	Method string
	Path   string
}

// Router mounts route groups under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	groups     []*RouteGroup
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the prefix, "v1" by default
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithMiddleware sets middleware applied to every versioned route
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a group for Setup
func (r *Router) Register(g *RouteGroup) *Router {
	r.groups = append(r.groups, g)
	return r
}

// Setup mounts every registered group and returns the resulting routes with
// their full paths
func (r *Router) Setup() []Route {
	base := "/api/" + r.apiVersion
	api := r.engine.Group(base, r.middleware...)
	var routes []Route
	for _, g := range r.groups {
		g.RegisterRoutes(api)
		routes = append(routes, g.routes(base)...)
	}
	return routes
}

// RouteGroup collects the routes of one resource, such as stores or
// courier callbacks, plus nested groups sharing its prefix
type RouteGroup struct {
	name       string
	prefix     string
	endpoints  []endpoint
	children   []*RouteGroup
	middleware []gin.HandlerFunc
}

type endpoint struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewRouteGroup creates a group mounted at prefix
func NewRouteGroup(name, prefix string) *RouteGroup {
	return &RouteGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group and its children
func (g *RouteGroup) Use(mw ...gin.HandlerFunc) *RouteGroup {
	g.middleware = append(g.middleware, mw...)
	return g
}

// Handle registers a route for method
func (g *RouteGroup) Handle(method, relPath string, handlers ...gin.HandlerFunc) *RouteGroup {
	g.endpoints = append(g.endpoints, endpoint{method: method, path: relPath, handlers: handlers})
	return g
}

func (g *RouteGroup) GET(relPath string, handlers ...gin.HandlerFunc) *RouteGroup {
	return g.Handle(http.MethodGet, relPath, handlers...)
}

func (g *RouteGroup) POST(relPath string, handlers ...gin.HandlerFunc) *RouteGroup {
	return g.Handle(http.MethodPost, relPath, handlers...)
}

func (g *RouteGroup) PUT(relPath string, handlers ...gin.HandlerFunc) *RouteGroup {
	return g.Handle(http.MethodPut, relPath, handlers...)
}

func (g *RouteGroup) DELETE(relPath string, handlers ...gin.HandlerFunc) *RouteGroup {
	return g.Handle(http.MethodDelete, relPath, handlers...)
}

// Group creates a nested group whose prefix is appended to this one
func (g *RouteGroup) Group(name, prefix string) *RouteGroup {
	child := NewRouteGroup(name, prefix)
	g.children = append(g.children, child)
	return child
}

// RegisterRoutes mounts the group on rg
func (g *RouteGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix, g.middleware...)
	for _, e := range g.endpoints {
		group.Handle(e.method, e.path, e.handlers...)
	}
	for _, child := range g.children {
		child.RegisterRoutes(group)
	}
}

func (g *RouteGroup) routes(parent string) []Route {
	base := path.Join(parent, g.prefix)
	out := make([]Route, 0, len(g.endpoints))
	for _, e := range g.endpoints {
		full := path.Join(base, e.path)
		out = append(out, Route{Group: g.name, Method: e.method, Path: full})
	}
	for _, child := range g.children {
		out = append(out, child.routes(base)...)
	}
	return out
}
