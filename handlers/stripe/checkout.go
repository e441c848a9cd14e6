package stripe

import (
	"fmt"
	"math"
	"net/http"
	"os"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"
)

// Tarification des pommes: $1.44 la pomme à l'achat
const PricePerApple = 1.44

// Prix d'abonnement par défaut quand le créateur n'en a pas fixé
const DefaultSubscriptionPrice = 4.99

// resolveStripeCustomer retrouve ou crée le customer Stripe du payeur
// et persiste son identifiant sur le profil
func resolveStripeCustomer(payer *models.User) (string, error) {
	if payer.StripeCustomerId != "" {
		// Vérifie que le customer existe vraiment sur Stripe
		if _, err := customer.Get(payer.StripeCustomerId, nil); err == nil {
			return payer.StripeCustomerId, nil
		}
		payer.StripeCustomerId = ""
	}

	custParams := &stripe.CustomerParams{
		Name:  stripe.String(payer.UserName),
		Email: stripe.String(payer.Email),
	}
	cust, err := customer.New(custParams)
	if err != nil {
		return "", err
	}

	db.DB.Model(payer).Update("stripe_customer_id", cust.ID)
	payer.StripeCustomerId = cust.ID
	return cust.ID, nil
}

// CreateSubscriptionCheckoutSession start a stripe payment to subscribe to a creator. Returns the Stripe session ID and URL.
// @Summary Create a Stripe Checkout session for a subscription
// @Description Start a Stripe payment to subscribe to a creator. Returns the Stripe session ID and checkout URL.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param creatorId path string true "ID of the creator"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: ID of the Stripe Checkout session, url: Stripe Checkout URL"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Can only subscribe to a creator"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions/checkout/{creatorId} [post]
func CreateSubscriptionCheckoutSession(c *gin.Context) {
	creatorId := c.Param("creatorId")

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to subscribe"})
		return
	}

	var payer models.User
	if err := db.DB.First(&payer, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", creatorId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Creator not found dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}
	if creator.Role != models.CreatorRole {
		utils.LogErrorWithUser(userID, nil, "Can only subscribe to a creator dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only subscribe to a creator"})
		return
	}

	var existingSub models.Subscription
	if err := db.DB.Where("subscriber_id = ? AND creator_id = ? AND status = ?",
		payer.ID, creator.ID, models.SubscriptionActive).First(&existingSub).Error; err == nil {
		utils.LogErrorWithUser(userID, nil, "Déjà une subscription active dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription with this creator."})
		return
	}

	if _, err := resolveStripeCustomer(&payer); err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du client Stripe dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	subscriptionPrice := creator.SubscriptionPrice
	if subscriptionPrice <= 0 {
		subscriptionPrice = DefaultSubscriptionPrice
	}

	// Produit + prix mensuel récurrent au tarif du créateur
	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String(fmt.Sprintf("Subscription to %s", creator.UserName)),
		Description: stripe.String(fmt.Sprintf("Monthly subscription to %s's exclusive content", creator.UserName)),
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du produit Stripe dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe product"})
		return
	}

	monthlyPrice, err := price.New(&stripe.PriceParams{
		UnitAmount: stripe.Int64(int64(math.Round(subscriptionPrice * 100))),
		Currency:   stripe.String("usd"),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String("month"),
		},
		Product: stripe.String(prod.ID),
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du prix Stripe dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe price"})
		return
	}

	siteURL := os.Getenv("SITE_URL")

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(payer.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(monthlyPrice.ID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/creator/%s?success=true", siteURL, creator.UserName)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/creator/%s?canceled=true", siteURL, creator.UserName)),
	}
	params.AddMetadata("creator_id", creator.ID)
	params.AddMetadata("subscriber_id", payer.ID)
	params.AddMetadata("creator_username", creator.UserName)

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création de la session Stripe dans CreateSubscriptionCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Session Stripe de souscription créée avec succès dans CreateSubscriptionCheckoutSession")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// AppleGiftCheckoutCreate corps de la requête de pourboire
type AppleGiftCheckoutCreate struct {
	PostID     string `json:"postId" binding:"required"`
	CreatorID  string `json:"creatorId" binding:"required"`
	AppleCount int    `json:"appleCount" binding:"required" example:"5"`
}

// CreateAppleGiftCheckoutSession starts a stripe payment for a one-time apple gift on a post.
// @Summary Create a Stripe Checkout session for an apple gift
// @Description Start a one-time Stripe payment to tip a creator with apples ($1.44 per apple). Returns the session ID and checkout URL.
// @Tags gifts
// @Accept json
// @Produce json
// @Param gift body AppleGiftCheckoutCreate true "Gift information"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: ID of the Stripe Checkout session, url: Stripe Checkout URL"
// @Failure 400 {object} map[string]string "error: Invalid apple count"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Creator or post not found"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /gifts/checkout [post]
func CreateAppleGiftCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated dans CreateAppleGiftCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to send apple gifts"})
		return
	}

	var input AppleGiftCheckoutCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.AppleCount < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Apple count must be at least 1"})
		return
	}

	var payer models.User
	if err := db.DB.First(&payer, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found dans CreateAppleGiftCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var creator models.User
	if err := db.DB.Where("id = ? AND role = ?", input.CreatorID, models.CreatorRole).First(&creator).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Creator not found dans CreateAppleGiftCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator or post not found"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", input.PostID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Post not found dans CreateAppleGiftCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator or post not found"})
		return
	}

	if _, err := resolveStripeCustomer(&payer); err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du client Stripe dans CreateAppleGiftCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	totalAmount := float64(input.AppleCount) * PricePerApple

	productName := fmt.Sprintf("%d Apple for %s", input.AppleCount, creator.UserName)
	if input.AppleCount > 1 {
		productName = fmt.Sprintf("%d Apples for %s", input.AppleCount, creator.UserName)
	}

	siteURL := os.Getenv("SITE_URL")

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(payer.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
					UnitAmount: stripe.Int64(int64(math.Round(totalAmount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/creator/%s?apple_gift=success", siteURL, creator.UserName)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/creator/%s?apple_gift=canceled", siteURL, creator.UserName)),
	}

	// Les montants sont figés ici et repris tels quels par la webhook,
	// sans revalidation côté serveur
	params.AddMetadata("type", "apple_gift")
	params.AddMetadata("post_id", post.ID)
	params.AddMetadata("creator_id", creator.ID)
	params.AddMetadata("sender_id", payer.ID)
	params.AddMetadata("apple_count", fmt.Sprintf("%d", input.AppleCount))
	params.AddMetadata("price_per_apple", fmt.Sprintf("%.2f", PricePerApple))
	params.AddMetadata("total_amount", fmt.Sprintf("%.2f", totalAmount))

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création de la session Stripe dans CreateAppleGiftCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Session Stripe de pourboire créée avec succès dans CreateAppleGiftCheckoutSession")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}
