package routes

import (
	"github.com/jkate0000007/eve-platform/handlers/gifts"
	"github.com/jkate0000007/eve-platform/handlers/stripe"
	"github.com/jkate0000007/eve-platform/middleware"

	"github.com/gin-gonic/gin"
)

func GiftsRoutes(r *gin.Engine) {
	giftsRoutes := r.Group("/gifts")
	{
		giftsRoutes.POST("/checkout", middleware.JWTAuth(), stripe.CreateAppleGiftCheckoutSession)

		// La cagnotte et les retraits sont réservés aux créateurs
		giftsRoutes.GET("", middleware.CreatorAuth(), gifts.GetCreatorAppleGifts)
		giftsRoutes.POST("/redeem", middleware.CreatorAuth(), gifts.RedeemApples)
		giftsRoutes.GET("/redemptions", middleware.CreatorAuth(), gifts.GetRedemptions)
	}
}
