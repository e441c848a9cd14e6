package routes

import (
	"github.com/jkate0000007/eve-platform/handlers/users"
	"github.com/jkate0000007/eve-platform/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	// Pages publiques; le viewer optionnel alimente isSubscribed/isFollowing
	r.GET("/creators", users.GetAllCreators)
	r.GET("/creators/:username", middleware.OptionalJWTAuth(), users.GetCreatorByUsername)

	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.GET("/me", users.GetMe)
		usersRoutes.PUT("/me", users.UpdateMe)
		usersRoutes.PUT("/me/account-type", users.UpdateAccountType)
		usersRoutes.POST("/me/avatar", users.UploadAvatar)
	}
}
