package gifts

import (
	"fmt"
	"net/http"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
)

// Taux de retrait: le créateur touche $1.00 par pomme
const RedemptionRate = 1.0

// Seuil minimal d'une demande de retrait
const MinRedemptionApples = 100

// redeemableApples recalcule le solde à chaque lecture: total des pommes
// reçues moins les demandes de retrait déjà posées
func redeemableApples(creatorID string) (int64, error) {
	var totalApples int64
	err := db.DB.Model(&models.AppleGift{}).
		Where("creator_id = ? AND status = ?", creatorID, models.AppleGiftCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalApples).Error
	if err != nil {
		return 0, err
	}

	var redeemedApples int64
	err = db.DB.Model(&models.AppleRedemption{}).
		Where("creator_id = ?", creatorID).
		Select("COALESCE(SUM(apple_count), 0)").Scan(&redeemedApples).Error
	if err != nil {
		return 0, err
	}

	return totalApples - redeemedApples, nil
}

// @Summary List the creator's apple gifts
// @Description Completed gifts (newest first) with read-time totals: apple count, dollar worth, redeemable balance
// @Tags gifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "gifts, totalApples, totalAmount, redeemableApples"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /gifts [get]
func GetCreatorAppleGifts(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var gifts []models.AppleGift
	err := db.DB.Where("creator_id = ? AND status = ?", userID, models.AppleGiftCompleted).
		Order("created_at DESC").Find(&gifts).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la récupération des cadeaux dans GetCreatorAppleGifts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching apple gifts"})
		return
	}

	// Totaux dérivés des lignes, jamais entretenus en compteur
	var totalApples int64
	var totalAmount float64
	for _, gift := range gifts {
		totalApples += int64(gift.Amount)
		totalAmount += gift.TotalAmount
	}

	redeemable, err := redeemableApples(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors du calcul du solde dans GetCreatorAppleGifts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing redeemable balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gifts":            gifts,
		"totalApples":      totalApples,
		"totalAmount":      fmt.Sprintf("%.2f", totalAmount),
		"redeemableApples": redeemable,
	})
}

// @Summary Request an apple redemption
// @Description Create a pending redemption request ($1.00 per apple). Minimum 100 apples, capped by the redeemable balance. No automated settlement.
// @Tags gifts
// @Accept json
// @Produce json
// @Param redemption body models.AppleRedemptionCreate true "Apple count to redeem"
// @Security BearerAuth
// @Success 201 {object} models.AppleRedemption
// @Failure 400 {object} map[string]string "error: Below minimum or above balance"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /gifts/redeem [post]
func RedeemApples(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.AppleRedemptionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.AppleCount < MinRedemptionApples {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Minimum redemption is 100 apples"})
		return
	}

	redeemable, err := redeemableApples(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors du calcul du solde dans RedeemApples")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing redeemable balance"})
		return
	}

	if int64(input.AppleCount) > redeemable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You don't have enough apples to redeem"})
		return
	}

	redemption := models.AppleRedemption{
		CreatorID:    userID.(string),
		AppleCount:   input.AppleCount,
		Amount:       float64(input.AppleCount) * RedemptionRate,
		Currency:     "usd",
		Status:       models.AppleRedemptionPending,
		PayoutMethod: "stripe",
	}

	if err := db.DB.Create(&redemption).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création de la demande dans RedeemApples")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating redemption request"})
		return
	}

	utils.LogSuccessWithUser(userID, "Demande de retrait créée dans RedeemApples")
	c.JSON(http.StatusCreated, redemption)
}

// @Summary List the creator's redemption requests
// @Description Return all redemption requests of the connected creator, newest first
// @Tags gifts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AppleRedemption
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /gifts/redemptions [get]
func GetRedemptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var redemptions []models.AppleRedemption
	if err := db.DB.Where("creator_id = ?", userID).Order("created_at DESC").Find(&redemptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching redemptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redemptions": redemptions})
}
