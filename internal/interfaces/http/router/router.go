package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine           *gin.Engine
	apiVersion       string
	registrars       []RouteRegistrar
	legacyRegistrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
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

// RegisterLegacy adds a registrar that is also mounted at the engine root.
// Existing clients call the historical unversioned paths, so those keep
// working alongside the versioned API group.
func (r *Router) RegisterLegacy(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	r.legacyRegistrars = append(r.legacyRegistrars, registrar)
	return r
}

// Setup registers all routes under the versioned API group, plus legacy
// registrars at the root
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	root := r.engine.Group("")
	for _, registrar := range r.legacyRegistrars {
		registrar.RegisterRoutes(root)
	}
}
