package models

import (
	"time"
)

type AppleRedemptionStatus string

const (
	AppleRedemptionPending   AppleRedemptionStatus = "pending"
	AppleRedemptionCompleted AppleRedemptionStatus = "completed"
)

// AppleRedemption est une demande de retrait du créateur ($1.00 la pomme).
// C'est uniquement un enregistrement de demande, aucun règlement automatisé.
type AppleRedemption struct {
	ID           string                `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID    string                `json:"creatorId" gorm:"type:uuid;not null"`
	AppleCount   int                   `json:"appleCount" gorm:"column:apple_count"`
	Amount       float64               `json:"amount" gorm:"type:numeric(10,2)"`
	Currency     string                `json:"currency" gorm:"default:usd"`
	Status       AppleRedemptionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PayoutMethod string                `json:"payoutMethod" gorm:"column:payout_method;default:stripe"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func (AppleRedemption) TableName() string {
	return "apple_redemptions"
}

// AppleRedemptionCreate modèle pour une demande de retrait
type AppleRedemptionCreate struct {
	AppleCount int `json:"appleCount" binding:"required" example:"150"`
}
