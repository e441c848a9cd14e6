package dashboard

import (
	"fmt"
	"net/http"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Creator dashboard statistics
// @Description All counters computed by COUNT/SUM at read time: followers, subscribers, posts, likes, gift totals, revenue, redemptions
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /dashboard/stats [get]
func GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	// Tout est recalculé à la lecture: exact par construction, au prix
	// d'une requête par compteur
	var followerCount, followingCount, subscriberCount, postCount, likeCount int64
	db.DB.Model(&models.Follower{}).Where("followed_id = ?", userID).Count(&followerCount)
	db.DB.Model(&models.Follower{}).Where("user_id = ?", userID).Count(&followingCount)
	db.DB.Model(&models.Subscription{}).Where("creator_id = ? AND status = ?", userID, models.SubscriptionActive).Count(&subscriberCount)
	db.DB.Model(&models.Post{}).Where("user_id = ?", userID).Count(&postCount)
	db.DB.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = ?", userID).Count(&likeCount)

	var totalApples int64
	db.DB.Model(&models.AppleGift{}).
		Where("creator_id = ? AND status = ?", userID, models.AppleGiftCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalApples)

	var appleWorth float64
	db.DB.Model(&models.AppleGift{}).
		Where("creator_id = ? AND status = ?", userID, models.AppleGiftCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&appleWorth)

	var subscriptionRevenue float64
	db.DB.Model(&models.Transaction{}).
		Where("creator_id = ? AND status = ?", userID, "completed").
		Select("COALESCE(SUM(amount), 0)").Scan(&subscriptionRevenue)

	var redeemedApples int64
	db.DB.Model(&models.AppleRedemption{}).
		Where("creator_id = ?", userID).
		Select("COALESCE(SUM(apple_count), 0)").Scan(&redeemedApples)

	utils.LogSuccessWithUser(userID, "Statistiques récupérées avec succès dans GetStats")
	c.JSON(http.StatusOK, gin.H{
		"followerCount":       followerCount,
		"followingCount":      followingCount,
		"subscriberCount":     subscriberCount,
		"postCount":           postCount,
		"likeCount":           likeCount,
		"totalApples":         totalApples,
		"appleWorth":          fmt.Sprintf("%.2f", appleWorth),
		"subscriptionRevenue": fmt.Sprintf("%.2f", subscriptionRevenue),
		"redeemedApples":      redeemedApples,
	})
}
