package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/biblioteca/library-system/internal/api/handler"
	"github.com/biblioteca/library-system/internal/api/middleware"
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
	"github.com/biblioteca/library-system/internal/core/service"
	pgstore "github.com/biblioteca/library-system/internal/infrastructure/db/postgres"
	redisstore "github.com/biblioteca/library-system/internal/infrastructure/db/redis"
)

// RouterDeps carries the infrastructure handles the router wires together.
type RouterDeps struct {
	DB       *sql.DB
	Redis    *redis.Client
	Codec    ports.TokenCodec
	TokenTTL time.Duration
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("library"))

	// --- Repositories ---
	userRepo := pgstore.NewUserRepository(deps.DB)
	authorRepo := pgstore.NewAuthorRepository(deps.DB)
	bookRepo := pgstore.NewBookRepository(deps.DB)
	loanRepo := pgstore.NewLoanRepository(deps.DB)

	// --- Services ---
	limiter := redisstore.NewLoginLimiter(deps.Redis)
	authService := service.NewAuthService(userRepo, deps.Codec, limiter, deps.TokenTTL, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Logger)
	authorService := service.NewAuthorService(authorRepo, deps.Logger)
	bookService := service.NewBookService(bookRepo, authorRepo, deps.Logger)
	loanService := service.NewLoanService(loanRepo, bookRepo, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authorHandler := handler.NewAuthorHandler(authorService)
	bookHandler := handler.NewBookHandler(bookService)
	loanHandler := handler.NewLoanHandler(loanService)

	guard := middleware.Auth(deps.Codec, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleLibrarian)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User administration ---
	users := e.Group("/users", guard)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Get) // admin-or-self enforced in the service
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.PATCH("/:id/toggle-status", userHandler.ToggleStatus, adminOnly)

	// --- Catalog ---
	authors := e.Group("/authors", guard)
	authors.GET("", authorHandler.List)
	authors.GET("/:id", authorHandler.Get)
	authors.POST("", authorHandler.Create, staffOnly)
	authors.PUT("/:id", authorHandler.Update, staffOnly)
	authors.DELETE("/:id", authorHandler.Delete, staffOnly)

	books := e.Group("/books", guard)
	books.GET("", bookHandler.List)
	books.GET("/:id", bookHandler.Get)
	books.POST("", bookHandler.Create, staffOnly)
	books.PUT("/:id", bookHandler.Update, staffOnly)
	books.DELETE("/:id", bookHandler.Delete, staffOnly)

	loans := e.Group("/loans", guard)
	loans.GET("", loanHandler.List)
	loans.GET("/:id", loanHandler.Get)
	loans.POST("", loanHandler.Create, staffOnly)
	loans.PUT("/:id", loanHandler.Update, staffOnly)
	loans.PATCH("/:id/return", loanHandler.Return, staffOnly)
	loans.DELETE("/:id", loanHandler.Delete, staffOnly)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
