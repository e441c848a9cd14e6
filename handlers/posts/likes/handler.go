package likes

import (
	"net/http"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"

	"github.com/gin-gonic/gin"
)

// @Summary Toggle like on a post
// @Description Add or remove a like on a post. Toggling twice returns to the original state.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "liked: bool, likeCount: int"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id}/like [post]
func ToggleLike(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	liked := false
	var like models.Like
	result := db.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&like)

	if result.Error == nil {
		// Le like existe déjà, on le supprime
		if err := db.DB.Delete(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing like: " + err.Error()})
			return
		}
	} else {
		like = models.Like{
			PostID: postID,
			UserID: userID.(string),
		}
		if err := db.DB.Create(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding like: " + err.Error()})
			return
		}
		liked = true
	}

	// Compteur recalculé à la lecture
	var likeCount int64
	if err := db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likeCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting likes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": likeCount})
}

// @Summary Get like count for a post
// @Description Return the like count and whether the viewer liked the post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{} "likeCount: int, liked: bool"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id}/likes [get]
func GetLikes(c *gin.Context) {
	postID := c.Param("id")

	var likeCount int64
	if err := db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likeCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting likes: " + err.Error()})
		return
	}

	liked := false
	if viewerID, ok := c.Get("user_id"); ok {
		var like models.Like
		if err := db.DB.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&like).Error; err == nil {
			liked = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"likeCount": likeCount, "liked": liked})
}
