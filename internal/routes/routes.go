package routes

import (
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type AppHandlers struct {
	Auth         *handlers.AuthHandler
	Job          *handlers.JobHandler
	Notification *handlers.NotificationHandler
}

// RegisterRoutes wires the whole HTTP surface onto the gin engine.
func RegisterRoutes(r *gin.Engine, h *AppHandlers) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	jobs := api.Group("/jobs", middleware.AuthMiddleware())
	{
		jobs.POST("", h.Job.CreateJob)
		jobs.GET("", h.Job.ListJobs)
		jobs.GET("/:jobId", h.Job.GetJob)
		jobs.POST("/:jobId/apply", h.Job.Apply)
		jobs.PUT("/applications/:applicationId/status", h.Job.UpdateApplicationStatus)
		jobs.POST("/:jobId/enrich",
			middleware.RequireRoles(models.UserRoleAdmin), h.Job.EnrichJob)
	}

	notifications := api.Group("/notifications", middleware.AuthMiddleware())
	{
		notifications.POST("/trigger",
			middleware.RequireRoles(models.UserRoleAdmin), h.Notification.Trigger)

		notifications.GET("/recent/:userId", h.Notification.GetRecent)
		notifications.GET("/all/:userId", h.Notification.GetAll)
		notifications.GET("/unread/:userId", h.Notification.GetUnread)
		notifications.GET("/unread-count/:userId", h.Notification.GetUnreadCount)

		notifications.PUT("/mark-read/:notificationId", h.Notification.MarkAsRead)
		notifications.PUT("/mark-all-read/:userId", h.Notification.MarkAllAsRead)
		notifications.DELETE("/:notificationId", h.Notification.DeleteNotification)
	}
}
