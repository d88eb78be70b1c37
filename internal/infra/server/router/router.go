// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/self-focus/backend/internal/integration/entrypoint/controller"
	"github.com/self-focus/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	goalController        *controller.GoalController
	habitController       *controller.HabitController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	goalController *controller.GoalController,
	habitController *controller.HabitController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		goalController:        goalController,
		habitController:       habitController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/me", r.userController.Me)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/summary", r.transactionController.Summary)
		transactions.GET("/monthly", r.transactionController.MonthlySummary)
		transactions.GET("/export", r.transactionController.Export)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", r.goalController.List)
		goals.POST("", r.goalController.Create)
		goals.GET("/:id", r.goalController.Get)
		goals.PUT("/:id", r.goalController.Update)
		goals.PATCH("/:id/status", r.goalController.UpdateStatus)
		goals.DELETE("/:id", r.goalController.Delete)
		goals.POST("/:id/milestones", r.goalController.CreateMilestone)
	}

	milestones := protected.Group("/milestones")
	{
		milestones.PATCH("/:id", r.goalController.SetMilestoneCompletion)
		milestones.DELETE("/:id", r.goalController.DeleteMilestone)
	}

	habits := protected.Group("/habits")
	{
		habits.GET("", r.habitController.List)
		habits.POST("", r.habitController.Create)
		habits.GET("/calendar", r.habitController.Calendar)
		habits.GET("/:id", r.habitController.Get)
		habits.PUT("/:id", r.habitController.Update)
		habits.POST("/:id/toggle", r.habitController.Toggle)
		habits.DELETE("/:id", r.habitController.Delete)
		habits.POST("/:id/checkin", r.habitController.CheckIn)
	}

	checkins := protected.Group("/checkins")
	{
		checkins.DELETE("/:id", r.habitController.RemoveCheckIn)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", r.dashboardController.Overview)
		dashboard.GET("/stats", r.dashboardController.Stats)
		dashboard.GET("/trends", r.dashboardController.Trends)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
