package routes

import (
	"github.com/jkate0000007/eve-platform/handlers/stripe"
	"github.com/jkate0000007/eve-platform/middleware"

	"github.com/gin-gonic/gin"
)

func StripeRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	subscriptionRoutes.Use(middleware.JWTAuth())
	{
		subscriptionRoutes.POST("/checkout/:creatorId", stripe.CreateSubscriptionCheckoutSession)
		subscriptionRoutes.DELETE("/:subscriptionId", stripe.CancelSubscription)
		subscriptionRoutes.GET("", stripe.GetUserSubscriptions)
	}

	// La webhook vérifie elle-même la signature du corps brut
	r.POST("/stripe/webhook", stripe.StripeWebhookHandler)
}
