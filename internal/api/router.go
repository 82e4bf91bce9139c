package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/workforcehq/employee-api/docs"
	"github.com/workforcehq/employee-api/internal/api/handler"
	"github.com/workforcehq/employee-api/internal/api/middleware"
	"github.com/workforcehq/employee-api/internal/core/ports"
	"github.com/workforcehq/employee-api/internal/core/service"
	"github.com/workforcehq/employee-api/internal/infrastructure/config"
	mongodb "github.com/workforcehq/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workforcehq/employee-api/internal/infrastructure/db/redis"
	"github.com/workforcehq/employee-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; login throttling and the redis readiness check are then
// disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, files *storage.DiskStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)

	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisdb.NewLoginThrottle(rdb)
	}

	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, cfg.TokenTTL, log)
	employeeService := service.NewEmployeeService(employeeRepo, files, log)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	// --- User routes (no auth) ---
	user := e.Group("/api/v1/user")
	user.POST("/signup", authHandler.Signup)
	user.POST("/login", authHandler.Login)

	// --- Employee routes (token-gated) ---
	// search and export registered before :id so the literal segments are
	// never captured as record ids.
	emp := e.Group("/api/v1/emp", middleware.Auth(authService))
	emp.POST("/employees", employeeHandler.Create)
	emp.GET("/employees", employeeHandler.List)
	emp.GET("/employees/search", employeeHandler.Search)
	emp.GET("/employees/export", employeeHandler.Export)
	emp.GET("/employees/:id", employeeHandler.Get)
	emp.PUT("/employees/:id", employeeHandler.Update)
	emp.DELETE("/employees/:id", employeeHandler.Delete)

	// --- Stored uploads served back as static content ---
	e.Static("/uploads", files.Dir())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
