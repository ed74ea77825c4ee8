package router

import (
	application "github.com/debtledger/backend/internal/application/identity"
	"github.com/debtledger/backend/internal/interfaces/http/handler"
	"github.com/debtledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Suppliers *handler.EntityHandler
	Customers *handler.EntityHandler
	Settings  *handler.SettingsHandler
	Reports   *handler.ReportHandler
	Backup    *handler.BackupHandler
	Events    *handler.EventsHandler
}

// Router registers the API routes on a gin engine.
type Router struct {
	engine      *gin.Engine
	apiVersion  string
	handlers    Handlers
	authService *application.AuthService
	authLimiter *middleware.RateLimiter
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuthRateLimiter applies a dedicated rate limiter to the login
// endpoint. Credential guessing gets throttled independently of the
// global limit.
func WithAuthRateLimiter(limiter *middleware.RateLimiter) RouterOption {
	return func(r *Router) {
		r.authLimiter = limiter
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, handlers Handlers, authService *application.AuthService, opts ...RouterOption) *Router {
	r := &Router{
		engine:      engine,
		apiVersion:  "v1",
		handlers:    handlers,
		authService: authService,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Setup registers all routes with the engine.
//
// Route protection is layered: login and the health probes are public,
// everything else requires a valid session, and user management plus
// backup routes additionally require the admin role. Handlers still
// check permissions themselves, so the middleware is the outer gate,
// not the only one.
func (r *Router) Setup() {
	// Probes live outside API versioning so orchestrators keep a
	// stable path across API versions.
	r.engine.GET("/health", r.handlers.System.Health)
	r.engine.GET("/ready", r.handlers.System.Ready)

	api := r.engine.Group("/api/" + r.apiVersion)

	login := []gin.HandlerFunc{}
	if r.authLimiter != nil {
		login = append(login, middleware.RateLimit(r.authLimiter))
	}
	login = append(login, r.handlers.Auth.Login)
	api.POST("/auth/login", login...)

	protected := api.Group("", middleware.SessionAuth(r.authService))
	{
		protected.POST("/auth/logout", r.handlers.Auth.Logout)
		protected.GET("/auth/me", r.handlers.Auth.Me)

		registerEntityRoutes(protected.Group("/suppliers"), r.handlers.Suppliers)
		registerEntityRoutes(protected.Group("/customers"), r.handlers.Customers)

		protected.GET("/settings", r.handlers.Settings.Get)
		protected.PUT("/settings", r.handlers.Settings.Update)

		protected.GET("/reports/summary", r.handlers.Reports.Summary)

		protected.GET("/events", r.handlers.Events.Stream)
	}

	admin := protected.Group("", middleware.RequireAdmin())
	{
		admin.GET("/users", r.handlers.Users.List)
		admin.POST("/users", r.handlers.Users.Create)
		admin.GET("/users/:id", r.handlers.Users.Get)
		admin.PUT("/users/:id", r.handlers.Users.Update)
		admin.DELETE("/users/:id", r.handlers.Users.Delete)

		admin.GET("/backup/export", r.handlers.Backup.Export)
		admin.POST("/backup/restore", r.handlers.Backup.Restore)
	}
}

// registerEntityRoutes wires the shared ledger entity surface. Suppliers
// and customers expose the same routes, differing only in the handler's
// entity kind.
func registerEntityRoutes(group *gin.RouterGroup, h *handler.EntityHandler) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.GET("/:id/transactions", h.ListTransactions)
	group.POST("/:id/debts", h.AddDebt)
	group.POST("/:id/payments", h.AddPayment)
}
