package models

import (
	"time"
)

type AppleGiftStatus string

const (
	AppleGiftCompleted AppleGiftStatus = "completed"
)

// AppleGift est un micro-pourboire en "pommes" ($1.44 la pomme à l'achat).
// Append-only: seules les webhooks Stripe créent des lignes.
type AppleGift struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SenderID      string          `json:"senderId" gorm:"type:uuid;not null"`
	CreatorID     string          `json:"creatorId" gorm:"type:uuid;not null"`
	PostID        string          `json:"postId" gorm:"type:uuid"`
	Amount        int             `json:"amount"`
	PricePerApple float64         `json:"pricePerApple" gorm:"type:numeric(10,2)"`
	TotalAmount   float64         `json:"totalAmount" gorm:"type:numeric(10,2)"`
	Currency      string          `json:"currency" gorm:"default:usd"`
	Status        AppleGiftStatus `json:"status" gorm:"type:varchar(20);default:'completed'"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (AppleGift) TableName() string {
	return "apple_gifts"
}
