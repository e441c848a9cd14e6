package posts

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jkate0000007/eve-platform/db"
	"github.com/jkate0000007/eve-platform/models"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CanViewPost re-dérive le droit d'accès à chaque requête: post preview,
// abonnement actif (viewer, créateur), ou viewer auteur du post.
// Aucune décision n'est mise en cache.
func CanViewPost(viewerID string, post models.Post) bool {
	if post.IsPreview {
		return true
	}
	if viewerID == "" {
		return false
	}
	if viewerID == post.UserID {
		return true
	}

	var sub models.Subscription
	err := db.DB.Where("subscriber_id = ? AND creator_id = ? AND status = ?",
		viewerID, post.UserID, models.SubscriptionActive).First(&sub).Error
	return err == nil
}

func viewerIDFromContext(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func mediaTypeFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".webm", ".mov":
		return "video"
	default:
		return "image"
	}
}

// @Summary Create a new post
// @Description Create a post with a media file, uploaded to the private content bucket (creator only)
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Post caption"
// @Param isPreview formData boolean false "Visible without subscription"
// @Param media formData file true "Post media"
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	name := c.Request.FormValue("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	isPreview := c.Request.FormValue("isPreview") == "true"

	file, err := c.FormFile("media")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media file is required"})
		return
	}

	// Clé opaque: c'est elle qui est persistée, jamais une URL
	key := "content/" + uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if _, err := utils.UploadContent(file, key); err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de l'upload du média dans CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading media: " + err.Error()})
		return
	}

	post := models.Post{
		UserID:    userID.(string),
		Name:      name,
		FileURL:   key,
		MediaType: mediaTypeFromFilename(file.Filename),
		IsPreview: isPreview,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du post dans CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post créé avec succès dans CreatePost")
	c.JSON(http.StatusCreated, post)
}

// @Summary Get the posts feed
// @Description Feed of posts, newest first. Locked posts carry no media URL; entitled posts get a 1h signed URL.
// @Tags posts
// @Produce json
// @Param creatorId query string false "Filter by creator"
// @Param isPreview query boolean false "Filter preview posts"
// @Success 200 {array} models.PostView
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [get]
func GetAllPosts(c *gin.Context) {
	query := db.DB.Model(&models.Post{}).Order("created_at DESC")

	if creatorID := c.Query("creatorId"); creatorID != "" {
		query = query.Where("user_id = ?", creatorID)
	}
	if isPreview := c.Query("isPreview"); isPreview != "" {
		query = query.Where("is_preview = ?", isPreview == "true")
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	viewerID := viewerIDFromContext(c)

	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		view := models.PostView{Post: post, Locked: !CanViewPost(viewerID, post)}
		view.FileURL = ""
		if !view.Locked {
			url, err := utils.SignedContentURL(post.FileURL)
			if err != nil {
				utils.LogError(err, "Erreur lors de la signature de l'URL dans GetAllPosts")
			} else {
				view.MediaURL = url
			}
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// @Summary Get a post by ID
// @Description Return the post with a signed media URL if the viewer is entitled, 403 otherwise
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 403 {object} map[string]string "error: Subscription required"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	viewerID := viewerIDFromContext(c)
	if !CanViewPost(viewerID, post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Subscription required to view this post"})
		return
	}

	view := models.PostView{Post: post, Locked: false}
	view.FileURL = ""
	url, err := utils.SignedContentURL(post.FileURL)
	if err != nil {
		utils.LogError(err, "Erreur lors de la signature de l'URL dans GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating media URL"})
		return
	}
	view.MediaURL = url

	c.JSON(http.StatusOK, view)
}

// @Summary Delete a post
// @Description Delete a post and its stored media (author only)
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not the author"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /posts/{id} [delete]
func DeletePost(c *gin.Context) {
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

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this post"})
		return
	}

	if post.FileURL != "" {
		if err := utils.DeleteContent(post.FileURL); err != nil {
			utils.LogErrorWithUser(userID, err, "Erreur lors de la suppression du média dans DeletePost")
		}
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post supprimé avec succès dans DeletePost")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
