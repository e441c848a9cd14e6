package follows

import (
	"net/http"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Follow a user
// @Description Create a follow edge towards another user (unique per pair)
// @Tags follows
// @Produce json
// @Param id path string true "User ID to follow"
// @Security BearerAuth
// @Success 201 {object} map[string]string "message: Followed successfully"
// @Failure 400 {object} map[string]string "error: Cannot follow yourself"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 409 {object} map[string]string "error: Already following"
// @Router /users/{id}/follow [post]
func Follow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	followedID := c.Param("id")
	if _, err := uuid.Parse(followedID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if followedID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
		return
	}

	var followed models.User
	if err := db.DB.First(&followed, "id = ?", followedID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.Follower
	if err := db.DB.Where("user_id = ? AND followed_id = ?", userID, followedID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
		return
	}

	follow := models.Follower{
		UserID:     userID.(string),
		FollowedID: followedID,
	}
	if err := db.DB.Create(&follow).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du follow dans Follow")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following user: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Followed successfully"})
}

// @Summary Unfollow a user
// @Description Delete the follow edge towards another user
// @Tags follows
// @Produce json
// @Param id path string true "User ID to unfollow"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Unfollowed successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Not following"
// @Router /users/{id}/follow [delete]
func Unfollow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	followedID := c.Param("id")

	var follow models.Follower
	if err := db.DB.Where("user_id = ? AND followed_id = ?", userID, followedID).First(&follow).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not following this user"})
		return
	}

	if err := db.DB.Delete(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// @Summary Get followers of a user
// @Description List the profiles following a user, with the read-time count
// @Tags follows
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{} "followers: profiles, count: int"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id}/followers [get]
func GetFollowers(c *gin.Context) {
	followedID := c.Param("id")

	var followers []models.User
	err := db.DB.
		Joins("JOIN followers ON followers.user_id = users.id").
		Where("followers.followed_id = ?", followedID).
		Find(&followers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
		return
	}

	for i := range followers {
		followers[i].Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers, "count": len(followers)})
}

// @Summary Get users followed by a user
// @Description List the profiles a user follows, with the read-time count
// @Tags follows
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{} "following: profiles, count: int"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id}/following [get]
func GetFollowing(c *gin.Context) {
	userID := c.Param("id")

	var following []models.User
	err := db.DB.
		Joins("JOIN followers ON followers.followed_id = users.id").
		Where("followers.user_id = ?", userID).
		Find(&following).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following"})
		return
	}

	for i := range following {
		following[i].Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"following": following, "count": len(following)})
}
