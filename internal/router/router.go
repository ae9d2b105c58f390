package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/internal/handlers"
	"github.com/nestnic/taskflow/internal/middleware"
	"github.com/nestnic/taskflow/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

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
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)
		api.GET("/users", middleware.AuthMiddleware(), handlers.ListUsers)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.POST("/read", handlers.MarkNotificationsRead)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.POST("/join", handlers.RequestToJoin)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
			projects.POST("/:project_id/archive", handlers.ArchiveProject)
			projects.POST("/:project_id/unarchive", handlers.UnarchiveProject)
			projects.POST("/:project_id/leave", handlers.LeaveProject)

			// Membership
			projects.GET("/:project_id/requests", handlers.ListJoinRequests)
			projects.POST("/:project_id/requests/:user_id/approve", handlers.ApproveJoinRequest)
			projects.POST("/:project_id/requests/:user_id/deny", handlers.DenyJoinRequest)
			projects.POST("/:project_id/collaborators", handlers.InviteCollaborator)

			// Kanban board
			projects.POST("/:project_id/tasks", handlers.CreateTask)
			projects.GET("/:project_id/tasks", handlers.ListTasks)
			projects.PATCH("/:project_id/tasks/:task_id", handlers.UpdateTask)
			projects.DELETE("/:project_id/tasks/:task_id", handlers.DeleteTask)

			// Chat
			projects.GET("/:project_id/messages", handlers.ListMessages)
			projects.POST("/:project_id/messages", handlers.CreateMessage)
			projects.DELETE("/:project_id/messages", handlers.ClearChat)

			// AI suggestions
			projects.POST("/:project_id/suggestions", handlers.SuggestTasks)
		}
	}

	return r
}
