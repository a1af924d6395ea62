package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/propamit/propamit-api/docs"
	"github.com/propamit/propamit-api/internal/api/handler"
	"github.com/propamit/propamit-api/internal/api/middleware"
	"github.com/propamit/propamit-api/internal/auth"
	"github.com/propamit/propamit-api/internal/core/ports"
	"github.com/propamit/propamit-api/internal/core/service"
	mongodb "github.com/propamit/propamit-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/propamit/propamit-api/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs. All clients are constructed in
// main and injected here; the router owns no lifecycle.
type Deps struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Issuer *auth.TokenIssuer
	Admins *auth.AdminList
	Mailer ports.Mailer
	Store  ports.FileStore
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("propamit"))
	// The frontend is served from several origins (propamit.com, preview
	// deployments, local dev), all sending credentials.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:                             []string{"*"},
		AllowMethods:                             []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:                             []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept},
		AllowCredentials:                         true,
		UnsafeWildcardOriginWithAllowCredentials: true,
	}))

	// --- Repositories ---
	users := mongodb.NewUserRepository(deps.DB)
	applications := mongodb.NewApplicationRepository(deps.DB)
	messages := mongodb.NewMessageRepository(deps.DB)
	documents := mongodb.NewDocumentRepository(deps.DB)
	userData := mongodb.NewUserDataRepository(deps.DB)
	limiter := redisinfra.NewLoginLimiter(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(users, deps.Issuer, deps.Admins, deps.Mailer, limiter, deps.Logger)
	dashboardService := service.NewDashboardService(users, applications, messages, documents, userData, deps.Logger)
	adminService := service.NewAdminService(users, applications, messages, documents, userData, deps.Logger)
	documentService := service.NewDocumentService(deps.Store, documents, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(adminService)
	uploadHandler := handler.NewUploadHandler(documentService)

	requireUser := middleware.RequireUser(deps.Issuer)
	requireAdmin := middleware.RequireAdmin(deps.Issuer, deps.Admins)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Admin routes ---
	e.POST("/admin/login", authHandler.AdminLogin)
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/recent-activity", adminHandler.RecentActivity)
	admin.POST("/reset-database", adminHandler.ResetDatabase)

	// --- User routes ---
	e.POST("/dashboard", dashboardHandler.Dispatch, requireUser)
	e.GET("/user/data", dashboardHandler.UserData, requireUser)
	e.POST("/upload", uploadHandler.Upload, requireUser)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
