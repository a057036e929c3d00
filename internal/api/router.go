package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mateosvilasboas/infog2-crud/internal/api/handler"
	"github.com/mateosvilasboas/infog2-crud/internal/api/middleware"
	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
	"github.com/mateosvilasboas/infog2-crud/internal/core/service"
	"github.com/mateosvilasboas/infog2-crud/internal/infrastructure/db/postgres"
	"github.com/mateosvilasboas/infog2-crud/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *goredis.Client, events ports.EventPublisher, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("store"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	revocationStore := redis.NewRevocationStore(rdb)

	userService := service.NewUserService(userRepo, events, log)
	authService := service.NewAuthService(userRepo, revocationStore, jwtSecret, tokenTTL)
	catalogService := service.NewCatalogService(catalogRepo, events, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService)
	clientHandler := handler.NewClientHandler(userService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(catalogService)

	authRequired := middleware.Auth(jwtSecret, revocationStore)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Admin routes (admin capability required) ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.POST("/", adminHandler.Create)
	admin.GET("/", adminHandler.List)
	admin.DELETE("/:id", adminHandler.Delete)

	// --- Client routes (self-registration open, self-service authenticated) ---
	client := e.Group("/client")
	client.POST("/", clientHandler.Register)
	client.PUT("/:id", clientHandler.Update, authRequired)
	client.DELETE("/:id", clientHandler.Delete, authRequired)

	// --- Catalog routes ---
	e.POST("/products", productHandler.Create, authRequired, adminOnly)
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)

	orders := e.Group("/orders", authRequired)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/complete", orderHandler.Complete, adminOnly)
	orders.POST("/:id/cancel", orderHandler.Cancel)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
