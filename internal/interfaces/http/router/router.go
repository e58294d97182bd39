// Package router wires page handlers onto the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every page handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them on the engine. Pages live at
// the root; there is no version prefix because the routes are browser URLs,
// not an API surface.
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// NewRouter creates a Router for the engine.
func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Register queues a registrar for Setup.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterProtected queues a registrar whose routes sit behind the given
// middleware (session gating, role gating).
func (r *Router) RegisterProtected(registrar RouteRegistrar, mw ...gin.HandlerFunc) *Router {
	r.registrars = append(r.registrars, protected{registrar: registrar, middleware: mw})
	return r
}

// Setup mounts every queued registrar.
func (r *Router) Setup() {
	root := r.engine.Group("/")
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(root)
	}
}

type protected struct {
	registrar  RouteRegistrar
	middleware []gin.HandlerFunc
}

func (p protected) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/")
	group.Use(p.middleware...)
	p.registrar.RegisterRoutes(group)
}
