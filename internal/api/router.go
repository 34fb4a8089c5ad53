package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/tutorialhub/tutorial-platform/docs"
	"github.com/tutorialhub/tutorial-platform/internal/api/handler"
	"github.com/tutorialhub/tutorial-platform/internal/api/middleware"
	"github.com/tutorialhub/tutorial-platform/internal/core/service"
	mongodb "github.com/tutorialhub/tutorial-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/tutorialhub/tutorial-platform/internal/infrastructure/db/redis"
)

// Options carries the router's tunables.
type Options struct {
	JWTSecret string
	StaticDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tutorialRepo := mongodb.NewTutorialRepository(db)
	revoker := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revoker, opts.JWTSecret, 0, log)
	userService := service.NewUserService(userRepo, log)
	tutorialService := service.NewTutorialService(tutorialRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tutorialHandler := handler.NewTutorialHandler(tutorialService)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tutorialhub"))
	// Current-user resolution runs on every request; anonymous requests
	// continue with no attached user.
	e.Use(middleware.CurrentUser(authService))

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout, middleware.RequireUser())

	// --- Profile routes ---
	users := e.Group("/api/users", middleware.RequireUser())
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)

	// --- Public tutorial routes (no auth) ---
	e.GET("/api/tutorials/public", tutorialHandler.ListPublic)
	e.GET("/api/tutorials/public/:id", tutorialHandler.GetPublic)
	e.GET("/api/stats", tutorialHandler.Stats)

	// --- Owner-scoped tutorial routes ---
	tutorials := e.Group("/api/tutorials", middleware.RequireUser())
	tutorials.GET("", tutorialHandler.ListOwned)
	tutorials.POST("", tutorialHandler.Create)
	tutorials.GET("/:id", tutorialHandler.GetOwned)
	tutorials.PUT("/:id", tutorialHandler.Update)
	tutorials.DELETE("/:id", tutorialHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static client bundle ---
	if opts.StaticDir != "" {
		e.Static("/", opts.StaticDir)
	}

	return e
}
