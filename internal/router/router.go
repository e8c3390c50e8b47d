package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teamboard-dev/teamboard/internal/handlers"
	"github.com/teamboard-dev/teamboard/internal/middleware"
	"github.com/teamboard-dev/teamboard/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.SignupUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/register", middleware.AuthMiddleware(), middleware.RequireAdmin(), handlers.RegisterUser)
		}

		profile := api.Group("/profile", middleware.AuthMiddleware())
		{
			profile.GET("", handlers.GetProfile)
			profile.PUT("", handlers.UpdateProfile)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.GET("/my-owned", handlers.MyOwnedProjects)
			projects.GET("/my-joined", handlers.MyJoinedProjects)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
			projects.GET("/:project_id/participants", handlers.GetParticipants)
			projects.POST("/:project_id/apply", handlers.CreateApplication)
			projects.PUT("/:project_id/applications/:application_id", handlers.RespondToApplication)
		}

		api.POST("/applications", middleware.AuthMiddleware(), handlers.CreateApplication)

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.PUT("/:notification_id/read", handlers.MarkNotificationRead)
		}

		users := api.Group("/users", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			users.GET("", handlers.ListUsers)
			users.POST("", handlers.RegisterUser)
			users.PUT("/:user_id", handlers.UpdateUser)
			users.DELETE("/:user_id", handlers.DeleteUser)
			users.PUT("/:user_id/password", handlers.ChangeUserPassword)
			users.POST("/:user_id/reset-password", handlers.ResetUserPassword)
		}
	}

	return r
}
