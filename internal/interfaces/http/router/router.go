package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spicebox/packing-summary/internal/interfaces/http/dto"
)

// DefaultBasePath prefixes every API route
const DefaultBasePath = "/api"

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration and the static front-end
type Router struct {
	engine     *gin.Engine
	basePath   string
	staticFS   http.FileSystem
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithBasePath sets the API prefix (default "/api")
func WithBasePath(path string) RouterOption {
	return func(r *Router) {
		r.basePath = "/" + strings.Trim(path, "/")
	}
}

// WithStaticDir serves the front-end from dir for every path outside the
// API prefix. Directory listings are disabled; "/" serves index.html.
func WithStaticDir(dir string) RouterOption {
	return func(r *Router) {
		if dir != "" {
			r.staticFS = gin.Dir(dir, false)
		}
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		basePath:   DefaultBasePath,
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine, then the static fallback
func (r *Router) Setup() {
	api := r.engine.Group(r.basePath)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	r.engine.NoRoute(r.noRoute)
}

// GroupNames lists the names of registered domain groups
func (r *Router) GroupNames() []string {
	names := make([]string, 0, len(r.registrars))
	for _, registrar := range r.registrars {
		if dg, ok := registrar.(*DomainGroup); ok {
			names = append(names, dg.Name())
		}
	}
	return names
}

// noRoute answers unknown API paths with the JSON error envelope and
// everything else from the static directory.
func (r *Router) noRoute(c *gin.Context) {
	path := c.Request.URL.Path
	isAPI := path == r.basePath || strings.HasPrefix(path, r.basePath+"/")
	isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead

	if isAPI || !isRead || r.staticFS == nil {
		c.JSON(http.StatusNotFound, dto.NewNotFoundResponse(path))
		return
	}

	c.FileFromFS(path, r.staticFS)
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:       name,
		prefix:     prefix,
		routes:     make([]routeDefinition, 0),
		middleware: make([]gin.HandlerFunc, 0),
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a read route. HEAD is answered by the same handlers.
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes,
		routeDefinition{method: http.MethodGet, path: path, handlers: handlers},
		routeDefinition{method: http.MethodHead, path: path, handlers: handlers},
	)
	return dg
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)

	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}
