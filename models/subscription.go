package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

type Subscription struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubscriberID         string             `json:"subscriberId" gorm:"type:uuid;not null"`
	CreatorID            string             `json:"creatorId" gorm:"type:uuid;not null"`
	Status               SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	StripeSubscriptionId string             `json:"stripeSubscriptionId"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
