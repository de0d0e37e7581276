package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Priyakatariya/smartbackend/internal/api/handler"
	"github.com/Priyakatariya/smartbackend/internal/api/middleware"
	"github.com/Priyakatariya/smartbackend/internal/core/service"
	infraauth "github.com/Priyakatariya/smartbackend/internal/infrastructure/auth"
	mongodb "github.com/Priyakatariya/smartbackend/internal/infrastructure/db/mongo"
	redisdb "github.com/Priyakatariya/smartbackend/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the HTTP layer needs beyond its
// connection handles.
type RouterConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	ViewCacheTTL time.Duration
}

// NewRouter builds the Echo instance with all routes registered. A nil rdb
// disables the listing view cache; everything else works without Redis.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("smartwaste"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	listingRepo := mongodb.NewListingRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	var viewCache service.ViewCache
	if rdb != nil {
		viewCache = redisdb.NewListingViewCache(rdb, cfg.ViewCacheTTL)
	}

	authenticator := infraauth.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(userRepo, authenticator, log)
	commentManager := service.NewCommentManager(commentRepo, userRepo, log)
	listingService := service.NewListingService(listingRepo, userRepo, commentManager, viewCache, log)

	authHandler := handler.NewAuthHandler(accountService)
	userHandler := handler.NewUserHandler(accountService)
	listingHandler := handler.NewListingHandler(listingService)

	// --- Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "smart-waste-swaraj",
			"status":  "running",
		})
	})

	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/signin", authHandler.Signin)

	// The account directory is the only gated surface; listing routes stay
	// open to match the public marketplace behaviour.
	e.GET("/api/users", userHandler.List,
		middleware.Auth(cfg.JWTSecret),
		middleware.RBAC("ADMIN"),
	)

	e.POST("/api/listings", listingHandler.Create)
	e.GET("/api/listings", listingHandler.List)
	e.GET("/api/listings/:id", listingHandler.Get)
	e.PUT("/api/listings/:id", listingHandler.Update)
	e.DELETE("/api/listings/:id", listingHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
