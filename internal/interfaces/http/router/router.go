package router

import (
	"github.com/gin-gonic/gin"

	"github.com/paymentecho/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration under the /api base path
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		engine:     engine,
		registrars: make([]RouteRegistrar, 0),
	}
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api")
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// PaymentRoutes mounts the payment endpoints
type PaymentRoutes struct {
	Handler *handler.PaymentHandler
}

// RegisterRoutes implements RouteRegistrar
func (r PaymentRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.GET("", r.Handler.List)
	payments.GET("/:id", r.Handler.GetByID)
	payments.POST("", r.Handler.Create)
	payments.POST("/echo", r.Handler.Echo)
	payments.DELETE("/:id", r.Handler.Delete)
}

// CounterpartyRoutes mounts the creditor or debtor endpoints
type CounterpartyRoutes struct {
	Prefix  string // "/creditors" or "/debtors"
	Handler *handler.CounterpartyHandler
}

// RegisterRoutes implements RouteRegistrar
func (r CounterpartyRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(r.Prefix)
	group.GET("", r.Handler.List)
	group.GET("/:id", r.Handler.GetByID)
	group.POST("", r.Handler.Create)
	group.DELETE("/:id", r.Handler.Delete)
}
