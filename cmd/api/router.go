package api

import (
	"net/http"

	"taskmanager-backend/internal/auth"
	taskDelivery "taskmanager-backend/internal/task/delivery"
	userDelivery "taskmanager-backend/internal/user/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authenticator auth.Authenticator, userHandler *userDelivery.UserHandler, taskHandler *taskDelivery.TaskHandler) {
	requireAuth := auth.AuthMiddleware(authenticator)

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// User routes
	users := r.Group("/users")
	{
		users.POST("", userHandler.Signup)
		users.POST("/login", userHandler.Login)
		users.GET("/:id/avatar", userHandler.GetAvatar)

		users.POST("/logout", requireAuth, userHandler.Logout)
		users.POST("/logoutAll", requireAuth, userHandler.LogoutAll)
		users.GET("/me", requireAuth, userHandler.Me)
		users.PATCH("/me", requireAuth, userHandler.UpdateMe)
		users.DELETE("/me", requireAuth, userHandler.DeleteMe)
		users.POST("/me/avatar", requireAuth, userHandler.UploadAvatar)
		users.DELETE("/me/avatar", requireAuth, userHandler.DeleteAvatar)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", taskHandler.GetTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTaskByID)
		tasks.PATCH("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}
}
