package router

import (
	"time"

	"carriertalk/internal/handlers"
	"carriertalk/internal/middleware"
	"carriertalk/internal/services"
	"carriertalk/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rep *services.ReputationService, notify *services.NotificationService) {
	cache := utils.NewCache(500)

	authHandler := handlers.NewAuthHandler(db)
	discussionHandler := handlers.NewDiscussionHandler(db, cache, rep, notify)
	notificationHandler := handlers.NewNotificationHandler(db)

	// One comment every 3 seconds per IP.
	commentLimiter := middleware.NewIPRateLimiter(rate.Every(3*time.Second), 1)

	api := r.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/discussions/:type/:id", discussionHandler.Threads)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)
		authorized.POST("/discussions/:type/:id/comments",
			middleware.RateLimit(commentLimiter), discussionHandler.CreateComment)
		authorized.POST("/comments/:id/vote", discussionHandler.Vote)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}
}
