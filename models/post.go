package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string         `json:"creatorId" gorm:"column:user_id;type:uuid;not null"`
	Name      string         `json:"name" binding:"required"`
	FileURL   string         `json:"fileUrl" gorm:"column:file_url"`
	MediaType string         `json:"mediaType" gorm:"column:media_type"`
	IsPreview bool           `json:"isPreview" gorm:"column:is_preview;default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" swaggerignore:"true" gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

type PostCreate struct {
	Name      string `json:"name" binding:"required"`
	IsPreview bool   `json:"isPreview"`
}

// PostView est un post enrichi pour un viewer donné: un post verrouillé
// ne porte jamais d'URL signée
type PostView struct {
	Post
	Locked   bool   `json:"locked"`
	MediaURL string `json:"mediaUrl,omitempty"`
}
