package router

import (
	"github.com/erp/catalog/internal/infrastructure/logger"
	"github.com/erp/catalog/internal/interfaces/http/handler"
	"github.com/erp/catalog/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers mounted by NewEngine
type Handlers struct {
	Category    *handler.CategoryHandler
	Subcategory *handler.SubcategoryHandler
	Item        *handler.ItemHandler
	System      *handler.SystemHandler
}

// EngineConfig configures the middleware chain of NewEngine
type EngineConfig struct {
	Logger      *zap.Logger
	Production  bool
	CORS        middleware.CORSConfig
	MaxBodySize int64
	Tracing     middleware.TracingConfig
	// Meter records HTTP metrics when non-nil
	Meter     metric.Meter
	Profiling bool
}

// NewEngine builds the gin engine with the full middleware chain:
// request ID, request logging, tracing, metrics, profiling labels,
// security headers, CORS, error normalization, panic recovery and the
// body limit, followed by the routes.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.SpanEnricher())
	if metrics, err := middleware.HTTPMetrics(cfg.Meter); err != nil {
		log.Warn("HTTP metrics disabled", zap.Error(err))
	} else {
		engine.Use(metrics)
	}
	engine.Use(middleware.Profiling(cfg.Profiling))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.ErrorHandler(cfg.Production))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.BodyLimit(cfg.MaxBodySize))

	engine.NoRoute(middleware.NoRoute())

	if h.System != nil {
		engine.GET("/", h.System.Root)
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(CatalogGroups(h)...)
	r.Setup()

	return engine
}

// CatalogGroups returns the route tables of the catalog resources.
// Static segments such as /search are registered before /:idOrName.
func CatalogGroups(h Handlers) []RouteRegistrar {
	var groups []RouteRegistrar

	if h.Category != nil {
		groups = append(groups, NewDomainGroup("/categories").
			POST("", h.Category.Create).
			GET("", h.Category.List).
			GET("/:idOrName", h.Category.Get).
			PUT("/:id", h.Category.Update))
	}

	if h.Subcategory != nil {
		groups = append(groups, NewDomainGroup("/subcategories").
			POST("", h.Subcategory.Create).
			GET("", h.Subcategory.List).
			GET("/category/:categoryId", h.Subcategory.ListByCategory).
			GET("/:idOrName", h.Subcategory.Get).
			PUT("/:id", h.Subcategory.Update))
	}

	if h.Item != nil {
		groups = append(groups, NewDomainGroup("/items").
			POST("", h.Item.Create).
			GET("", h.Item.List).
			GET("/search", h.Item.Search).
			GET("/category/:categoryId", h.Item.ListByCategory).
			GET("/subcategory/:subcategoryId", h.Item.ListBySubcategory).
			GET("/:idOrName", h.Item.Get).
			PUT("/:id", h.Item.Update))
	}

	return groups
}
