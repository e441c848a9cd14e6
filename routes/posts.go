package routes

import (
	"github.com/jkate0000007/eve-platform/handlers/posts"
	"github.com/jkate0000007/eve-platform/handlers/posts/likes"
	"github.com/jkate0000007/eve-platform/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	// Routes publiques: l'entitlement est re-dérivé par viewer
	r.GET("/posts", middleware.OptionalJWTAuth(), posts.GetAllPosts)
	r.GET("/posts/:id", middleware.OptionalJWTAuth(), posts.GetPostByID)
	r.GET("/posts/:id/likes", middleware.OptionalJWTAuth(), likes.GetLikes)

	// Routes protégées
	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.JWTAuth())
	{
		postsRoutes.DELETE("/:id", posts.DeletePost)
		postsRoutes.POST("/:id/like", likes.ToggleLike)
	}

	// Seuls les créateurs publient
	r.POST("/posts", middleware.CreatorAuth(), posts.CreatePost)
}
