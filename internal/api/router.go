package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweetshop/inventory-api/internal/api/handler"
	"github.com/sweetshop/inventory-api/internal/api/middleware"
	"github.com/sweetshop/inventory-api/internal/core/service"
	mongodb "github.com/sweetshop/inventory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/inventory-api/internal/infrastructure/db/redis"
	"github.com/sweetshop/inventory-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sweetRepo := mongodb.NewSweetRepository(db)
	sweetCache := redisdb.NewSweetCache(rdb, cfg.CacheTTL)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	catalogService := service.NewCatalogService(sweetRepo, sweetCache, log)
	inventoryService := service.NewInventoryService(sweetRepo, sweetCache, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(catalogService, inventoryService)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/users/", authHandler.Register)
	e.POST("/token", authHandler.Login)

	// --- Sweets (authenticated; role per policy table) ---
	sweets := e.Group("/sweets", auth)
	sweets.GET("/", sweetHandler.List, middleware.Require(middleware.OpListSweets))
	sweets.GET("/search", sweetHandler.Search, middleware.Require(middleware.OpSearchSweets))
	sweets.GET("/:id", sweetHandler.Get, middleware.Require(middleware.OpGetSweet))
	sweets.POST("/", sweetHandler.Create, middleware.Require(middleware.OpCreateSweet))
	sweets.PUT("/:id", sweetHandler.Update, middleware.Require(middleware.OpUpdateSweet))
	sweets.DELETE("/:id", sweetHandler.Delete, middleware.Require(middleware.OpDeleteSweet))
	sweets.POST("/:id/restock", sweetHandler.Restock, middleware.Require(middleware.OpRestockSweet))

	e.POST("/purchase/:id", sweetHandler.Purchase, auth, middleware.Require(middleware.OpPurchaseSweet))

	// --- Users (admin) ---
	e.GET("/users/", userHandler.List, auth, middleware.Require(middleware.OpListUsers))
	e.PUT("/users/:id", userHandler.Update, auth, middleware.Require(middleware.OpUpdateUser))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
