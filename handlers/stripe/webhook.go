package stripe

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler point d'entrée unique des événements Stripe.
// La signature est vérifiée sur le corps brut avant tout branchement.
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Impossible de lire le corps de la requête"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret non configuré"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		utils.LogError(err, "Vérification de la signature Stripe échouée dans StripeWebhookHandler")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vérification de la signature Stripe échouée"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutSessionCompleted(c, event)
	case "customer.subscription.deleted":
		// Accusé réception sans application: l'annulation côté provider
		// n'est pas répercutée ici
		utils.LogInfo("customer.subscription.deleted reçu et ignoré dans StripeWebhookHandler")
		c.JSON(http.StatusOK, gin.H{"message": "Événement accusé réception"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Événement ignoré"})
	}
}

// handleCheckoutSessionCompleted branche uniquement sur les métadonnées
// présentes: type=apple_gift route vers l'insertion du cadeau, la paire
// creator_id/subscriber_id vers l'abonnement
func handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erreur parsing CheckoutSession"})
		return
	}

	metadata := session.Metadata

	if metadata["type"] == "apple_gift" {
		handleAppleGiftCompleted(c, session)
		return
	}

	if metadata["creator_id"] != "" && metadata["subscriber_id"] != "" {
		handleSubscriptionCompleted(c, session)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session sans métadonnées reconnues, ignorée"})
}

func handleAppleGiftCompleted(c *gin.Context, session stripe.CheckoutSession) {
	metadata := session.Metadata

	appleCount, err := strconv.Atoi(metadata["apple_count"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "apple_count invalide"})
		return
	}

	// Montants repris tels quels des métadonnées, sans recalcul
	pricePerApple, _ := strconv.ParseFloat(metadata["price_per_apple"], 64)
	totalAmount, _ := strconv.ParseFloat(metadata["total_amount"], 64)

	gift := models.AppleGift{
		SenderID:      metadata["sender_id"],
		CreatorID:     metadata["creator_id"],
		PostID:        metadata["post_id"],
		Amount:        appleCount,
		PricePerApple: pricePerApple,
		TotalAmount:   totalAmount,
		Currency:      "usd",
		Status:        models.AppleGiftCompleted,
	}

	if err := db.DB.Create(&gift).Error; err != nil {
		utils.LogError(err, "Erreur création apple gift dans handleAppleGiftCompleted")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création apple gift"})
		return
	}

	utils.LogSuccessWithUser(gift.SenderID, "Apple gift enregistré dans handleAppleGiftCompleted")
	c.JSON(http.StatusOK, gin.H{"message": "Apple gift enregistré"})
}

func handleSubscriptionCompleted(c *gin.Context, session stripe.CheckoutSession) {
	metadata := session.Metadata

	var stripeSubID string
	if session.Subscription != nil {
		stripeSubID = session.Subscription.ID
	}

	sub := models.Subscription{
		SubscriberID:         metadata["subscriber_id"],
		CreatorID:            metadata["creator_id"],
		Status:               models.SubscriptionActive,
		StripeSubscriptionId: stripeSubID,
	}

	if err := db.DB.Create(&sub).Error; err != nil {
		utils.LogError(err, "Erreur création subscription dans handleSubscriptionCompleted")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création subscription"})
		return
	}

	currency := "usd"
	if session.Currency != "" {
		currency = string(session.Currency)
	}

	// Deuxième écriture, volontairement hors transaction avec la première
	transaction := models.Transaction{
		SubscriberID:  metadata["subscriber_id"],
		CreatorID:     metadata["creator_id"],
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      currency,
		Status:        "completed",
		PaymentMethod: "stripe",
	}

	if err := db.DB.Create(&transaction).Error; err != nil {
		utils.LogError(err, "Erreur création transaction dans handleSubscriptionCompleted")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création transaction"})
		return
	}

	utils.LogSuccessWithUser(sub.SubscriberID, "Subscription et transaction enregistrées dans handleSubscriptionCompleted")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription créée et activée"})
}
