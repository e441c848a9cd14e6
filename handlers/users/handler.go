package users

import (
	"net/http"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Get the connected user's profile
// @Description Return the profile of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// @Summary Update the connected user's profile
// @Description Settings form: username, bio and subscription price (creators only)
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 409 {object} map[string]string "error: Username already taken"
// @Router /users/me [put]
func UpdateMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.UserName != "" && input.UserName != user.UserName {
		var taken models.User
		if err := db.DB.Where("user_name = ? AND id <> ?", input.UserName, user.ID).First(&taken).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		updates["user_name"] = input.UserName
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if input.SubscriptionPrice != nil {
		if user.Role != models.CreatorRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only creators can set a subscription price"})
			return
		}
		if *input.SubscriptionPrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription price must be positive"})
			return
		}
		updates["subscription_price"] = *input.SubscriptionPrice
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Erreur lors de la mise à jour du profil dans UpdateMe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
			return
		}
	}

	utils.LogSuccessWithUser(userID, "Profil mis à jour avec succès dans UpdateMe")
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// @Summary Choose the account type
// @Description One-shot onboarding: switch the account from fan to creator. Re-choosing is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param accountType body models.AccountTypeUpdate true "FAN or CREATOR"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Account type updated"
// @Failure 400 {object} map[string]string "error: Invalid account type"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 409 {object} map[string]string "error: Account type already chosen"
// @Router /users/me/account-type [put]
func UpdateAccountType(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.AccountTypeUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.AccountType != models.FanRole && input.AccountType != models.CreatorRole {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account type"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Le type de compte se choisit une seule fois à l'onboarding
	if user.Role == models.CreatorRole {
		c.JSON(http.StatusConflict, gin.H{"error": "Account type already chosen"})
		return
	}

	if err := db.DB.Model(&user).Update("role", input.AccountType).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors du changement de type de compte dans UpdateAccountType")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating account type"})
		return
	}

	utils.LogSuccessWithUser(userID, "Type de compte mis à jour dans UpdateAccountType")
	c.JSON(http.StatusOK, gin.H{"message": "Account type updated"})
}

// @Summary Upload a profile picture
// @Description Upload an avatar image, stored on Cloudinary (public URL)
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Security BearerAuth
// @Success 200 {object} map[string]string "avatarUrl: public URL"
// @Failure 400 {object} map[string]string "error: Invalid file"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me/avatar [post]
func UploadAvatar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	avatarURL, err := utils.UploadAvatar(file)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de l'upload de l'avatar dans UploadAvatar")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading avatar: " + err.Error()})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", avatarURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving avatar"})
		return
	}

	utils.LogSuccessWithUser(userID, "Avatar mis à jour avec succès dans UploadAvatar")
	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}

// @Summary Explore creators
// @Description List all creator profiles (username, bio, avatar, subscription price)
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /creators [get]
func GetAllCreators(c *gin.Context) {
	var creators []models.User
	if err := db.DB.Where("role = ?", models.CreatorRole).Order("created_at DESC").Find(&creators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching creators"})
		return
	}

	for i := range creators {
		creators[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{"creators": creators})
}

// @Summary Public creator page
// @Description Creator profile with read-time counters (followers, subscribers, posts, apples) and viewer flags
// @Tags users
// @Produce json
// @Param username path string true "Creator username"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Router /creators/{username} [get]
func GetCreatorByUsername(c *gin.Context) {
	username := c.Param("username")

	var creator models.User
	if err := db.DB.Where("user_name = ? AND role = ?", username, models.CreatorRole).First(&creator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}
	creator.Password = ""

	// Compteurs dérivés à la lecture, jamais entretenus en incrémental
	var followerCount, followingCount, subscriberCount, postCount int64
	db.DB.Model(&models.Follower{}).Where("followed_id = ?", creator.ID).Count(&followerCount)
	db.DB.Model(&models.Follower{}).Where("user_id = ?", creator.ID).Count(&followingCount)
	db.DB.Model(&models.Subscription{}).Where("creator_id = ? AND status = ?", creator.ID, models.SubscriptionActive).Count(&subscriberCount)
	db.DB.Model(&models.Post{}).Where("user_id = ?", creator.ID).Count(&postCount)

	var totalApples int64
	db.DB.Model(&models.AppleGift{}).Where("creator_id = ? AND status = ?", creator.ID, models.AppleGiftCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalApples)

	var recentGifts []models.AppleGift
	db.DB.Where("creator_id = ?", creator.ID).Order("created_at DESC").Limit(5).Find(&recentGifts)

	isSubscribed := false
	isFollowing := false
	if viewerID, ok := c.Get("user_id"); ok {
		var sub models.Subscription
		if err := db.DB.Where("subscriber_id = ? AND creator_id = ? AND status = ?",
			viewerID, creator.ID, models.SubscriptionActive).First(&sub).Error; err == nil {
			isSubscribed = true
		}
		var follow models.Follower
		if err := db.DB.Where("user_id = ? AND followed_id = ?", viewerID, creator.ID).First(&follow).Error; err == nil {
			isFollowing = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"creator":         creator,
		"followerCount":   followerCount,
		"followingCount":  followingCount,
		"subscriberCount": subscriberCount,
		"postCount":       postCount,
		"totalApples":     totalApples,
		"recentGifts":     recentGifts,
		"isSubscribed":    isSubscribed,
		"isFollowing":     isFollowing,
	})
}
