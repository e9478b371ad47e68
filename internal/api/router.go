package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/alexdiasritter/softex-curso/docs"
	"github.com/alexdiasritter/softex-curso/internal/api/handler"
	"github.com/alexdiasritter/softex-curso/internal/api/middleware"
	"github.com/alexdiasritter/softex-curso/internal/core/domain"
	"github.com/alexdiasritter/softex-curso/internal/core/service"
	"github.com/alexdiasritter/softex-curso/internal/infrastructure/config"
	"github.com/alexdiasritter/softex-curso/internal/infrastructure/crypto"
	mongostore "github.com/alexdiasritter/softex-curso/internal/infrastructure/db/mongo"
	redisinfra "github.com/alexdiasritter/softex-curso/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redisclient.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	store := mongostore.NewUserStore(db)
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	accounts := service.NewAccountService(store, hasher, log)
	throttle := redisinfra.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)

	accountHandler := handler.NewAccountHandler(accounts, throttle, cfg.JWTSecret, cfg.TokenTTL, log)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", accountHandler.Login)

	// --- Account routes (authenticated) ---
	accountsGroup := e.Group("/accounts", authMiddleware)
	accountsGroup.GET("", accountHandler.List,
		middleware.RequireProfile(domain.ProfileGerente, domain.ProfileDiretoria))
	accountsGroup.GET("/:id", accountHandler.GetByID)
	accountsGroup.PUT("/:id", accountHandler.Update)
	accountsGroup.DELETE("/:id", accountHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
