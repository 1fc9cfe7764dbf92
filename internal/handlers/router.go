package handlers

import (
	"project-tracker/internal/cache"
	"project-tracker/internal/config"
	"project-tracker/internal/middleware"
	"project-tracker/internal/monitoring"
	"project-tracker/internal/services"
	"project-tracker/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterDeps carries the shared infrastructure handed to every handler.
// Cache and Queue may be nil; the router then runs without listing caches or
// reminder scheduling.
type RouterDeps struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache *cache.RedisCache
	Queue *worker.JobQueue
}

// SetupRouter wires services, middleware and routes. Shared between the
// server entrypoint and the end-to-end tests.
func SetupRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Cfg

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.Default())
	router.Use(middleware.RateLimit(cfg.RateLimit))

	authService := services.NewAuthService(cfg.Auth)
	registerService := services.NewRegisterService(cfg.Auth)
	userService := services.NewUserService()
	taskService := services.NewTaskService(deps.Queue)
	storyService := services.NewStoryService(cfg.AI)

	var projectService services.ProjectService = services.NewProjectService()
	var cachedProjects *services.CachedProjectService
	if deps.Cache != nil {
		cachedProjects = services.NewCachedProjectService(projectService, deps.Cache)
		projectService = cachedProjects
	}

	authHandler := NewAuthHandler(deps.DB, authService)
	registerHandler := NewRegisterHandler(deps.DB, registerService)
	refreshHandler := NewRefreshHandler(deps.DB, authService)
	logoutHandler := NewLogoutHandler(deps.DB, authService)
	projectHandler := NewProjectHandler(deps.DB, projectService, userService)
	taskHandler := NewTaskHandler(deps.DB, taskService, userService, cachedProjects)
	userHandler := NewUserHandler(deps.DB, userService)
	storyHandler := NewStoryHandler(deps.DB, storyService, userService)

	router.GET("/healthz", monitoring.HealthHandler())
	router.GET("/readyz", monitoring.ReadinessHandler())
	router.GET("/livez", monitoring.LivenessHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	api := router.Group("/api")
	{
		api.POST("/auth/register", registerHandler.Registration)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", refreshHandler.Refresh)
		api.POST("/auth/logout", logoutHandler.Logout)
	}

	protected := router.Group("/api", middleware.RequireAuth(cfg.Auth.JWTSecret))
	{
		protected.GET("/projects", projectHandler.ListProjects)
		protected.POST("/projects", projectHandler.CreateProject)
		protected.GET("/projects/:id", projectHandler.GetProject)
		protected.POST("/projects/:id/tasks", taskHandler.CreateTask)
		protected.PUT("/tasks/:id", taskHandler.UpdateTask)
		protected.GET("/users", userHandler.ListUsers)
		protected.POST("/ai/generate-user-stories", storyHandler.GenerateUserStories)
	}

	return router
}
