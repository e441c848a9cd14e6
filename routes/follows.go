package routes

import (
	"github.com/jkate0000007/eve-platform/handlers/follows"
	"github.com/jkate0000007/eve-platform/middleware"

	"github.com/gin-gonic/gin"
)

func FollowsRoutes(r *gin.Engine) {
	r.GET("/users/:id/followers", follows.GetFollowers)
	r.GET("/users/:id/following", follows.GetFollowing)

	followRoutes := r.Group("/users")
	followRoutes.Use(middleware.JWTAuth())
	{
		followRoutes.POST("/:id/follow", follows.Follow)
		followRoutes.DELETE("/:id/follow", follows.Unfollow)
	}
}
