package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/auth"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/handler"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	System          *handler.SystemHandler
	Stores          *handler.StoreHandler
	Integrations    *handler.IntegrationHandler
	Orders          *handler.OrderHandler
	Products        *handler.ProductHandler
	CourierCallback *handler.CourierCallbackHandler
}

// EngineDeps are the collaborators of the middleware chain
type EngineDeps struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWT        *auth.JWTService
	Authorizer middleware.StoreAuthorizer
	// Meter is nil when metrics are disabled
	Meter metric.Meter
}

// NewEngine builds the gin engine with the middleware chain and every route.
// Order: request ID, recovery, access log, security headers, CORS, body
// limit, tracing, metrics, profiling. JWT applies to /api/v1 only.
func NewEngine(deps EngineDeps, h Handlers) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(deps.Meter, log))
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:   cfg.Telemetry.ProfilingEnabled,
		SkipPaths: []string{"/health", "/api/v1/health"},
	}))

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtCfg := middleware.DefaultJWTConfig(deps.JWT)
	jwtCfg.Logger = log

	r := NewRouter(engine, WithAPIVersion("v1"), WithMiddleware(
		middleware.JWTAuth(jwtCfg),
		middleware.SpanAttributes(),
	))
	r.Register(systemRoutes(h)).
		Register(callbackRoutes(h)).
		Register(storeRoutes(h, deps.Authorizer))
	for _, rt := range r.Setup() {
		log.Debug("Route mounted", zap.String("group", rt.Group), zap.String("method", rt.Method), zap.String("path", rt.Path))
	}

	return engine
}

func systemRoutes(h Handlers) *RouteGroup {
	g := NewRouteGroup("system", "")
	g.GET("/health", h.System.Health)
	g.GET("/system/info", h.System.GetSystemInfo)
	return g
}

// callbackRoutes are called by couriers. JWTAuth skips the prefix; the
// integration token is checked by the handler.
func callbackRoutes(h Handlers) *RouteGroup {
	g := NewRouteGroup("callbacks", "/callbacks")
	g.POST("/couriers/:integrationId/status", h.CourierCallback.Status)
	return g
}

func storeRoutes(h Handlers, authorizer middleware.StoreAuthorizer) *RouteGroup {
	stores := NewRouteGroup("stores", "/stores")
	stores.POST("", h.Stores.Create)
	stores.GET("", h.Stores.List)
	stores.GET("/:id", h.Stores.GetByID)
	stores.PUT("/:id", h.Stores.Rename)
	stores.DELETE("/:id", h.Stores.Delete)

	stores.GET("/:id/integrations/ecommerce", h.Integrations.ListEcommerce)
	stores.POST("/:id/integrations/ecommerce", h.Integrations.AddEcommerce)
	stores.PUT("/:id/integrations/ecommerce/:integrationId", h.Integrations.UpdateEcommerce)
	stores.DELETE("/:id/integrations/ecommerce/:integrationId", h.Integrations.RemoveEcommerce)
	stores.GET("/:id/integrations/courier", h.Integrations.ListCourier)
	stores.POST("/:id/integrations/courier", h.Integrations.AddCourier)
	stores.PUT("/:id/integrations/courier/:integrationId", h.Integrations.UpdateCourier)
	stores.DELETE("/:id/integrations/courier/:integrationId", h.Integrations.RemoveCourier)

	// orders and products of one store
	scoped := stores.Group("store", "/:id").Use(
		middleware.StoreAccess("id", authorizer, handler.RespondError),
		middleware.SpanAttributes(),
	)
	scoped.POST("/orders/pull", h.Orders.Pull)
	scoped.GET("/orders", h.Orders.List)
	scoped.GET("/orders/:orderId", h.Orders.GetByID)
	scoped.POST("/orders/:orderId/dispatch", h.Orders.Dispatch)
	scoped.PUT("/orders/:orderId/status", h.Orders.ChangeStatus)
	scoped.GET("/products", h.Products.List)

	return stores
}
