package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/river20s/task-manager/controllers"
	"github.com/river20s/task-manager/middleware"
	"github.com/river20s/task-manager/services"
)

// RegisterRoutes binds the HTTP surface to the controllers.
func RegisterRoutes(r *gin.Engine, ac *controllers.AuthController, tc *controllers.TaskController, sessions services.SessionStore) {
	// Public routes
	r.GET("/login", ac.ShowLogin)
	r.POST("/login", ac.Login)
	r.GET("/register", ac.ShowRegister)
	r.POST("/register", ac.Register)

	// Protected routes
	private := r.Group("/")
	private.Use(middleware.RequireAuth(sessions))
	{
		private.GET("/", tc.Home)
		private.POST("/add", tc.AddTask)
		private.POST("/complete/:id", tc.Complete)
		private.GET("/tag/:name", tc.ByTag)
		private.GET("/logout", ac.Logout)
	}
}
