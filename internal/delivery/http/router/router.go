// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"alerte/internal/delivery/http/middleware"
	"alerte/internal/delivery/http/router/handler"
	"alerte/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProfileHandler   *handler.ProfileHandler
	ReportHandler    *handler.ReportHandler
	StatsHandler     *handler.StatsHandler
	ReferenceHandler *handler.ReferenceHandler
	AdminHandler     *handler.AdminHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	profileHandler   *handler.ProfileHandler
	reportHandler    *handler.ReportHandler
	statsHandler     *handler.StatsHandler
	referenceHandler *handler.ReferenceHandler
	adminHandler     *handler.AdminHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		profileHandler:   params.ProfileHandler,
		reportHandler:    params.ReportHandler,
		statsHandler:     params.StatsHandler,
		referenceHandler: params.ReferenceHandler,
		adminHandler:     params.AdminHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public reference data, needed by the forms before any login.
	e.GET("/communes", r.referenceHandler.ListCommunes)
	e.GET("/problem-types", r.referenceHandler.ListProblemTypes)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
	}

	// Profile routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.profileHandler.GetProfile)
		userGroup.PUT("/profile", r.profileHandler.UpdateProfile)
	}

	// Report routes. Visibility is enforced per actor inside the usecase,
	// so one route set serves citizens, bourgmestres and admins. Submission
	// alone accepts unauthenticated callers (anonymous reporting).
	reportGroup := e.Group("/reports")
	{
		reportGroup.POST("", r.reportHandler.Submit, r.authMiddleware.OptionalAuthenticate)
		reportGroup.GET("", r.reportHandler.List, r.authMiddleware.Authenticate)
		reportGroup.GET("/:id", r.reportHandler.Get, r.authMiddleware.Authenticate)
		reportGroup.PATCH("/:id/status", r.reportHandler.UpdateStatus,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleBourgmestre, entity.RoleAdmin))
		reportGroup.POST("/:id/images", r.reportHandler.AddImages, r.authMiddleware.Authenticate)
		reportGroup.POST("/:id/comments", r.reportHandler.AddComment, r.authMiddleware.Authenticate)
		reportGroup.GET("/:id/comments", r.reportHandler.ListComments, r.authMiddleware.Authenticate)
	}

	// Dashboard aggregations, scoped per actor.
	statsGroup := e.Group("/stats")
	statsGroup.Use(r.authMiddleware.Authenticate)
	{
		statsGroup.GET("/overview", r.statsHandler.Overview)
	}

	// Admin routes require authentication and the admin role.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id/role", r.adminHandler.AssignRole)
	}
}
