package models

import (
	"time"
)

// Transaction enregistre un paiement d'abonnement complété (append-only)
type Transaction struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubscriberID  string    `json:"subscriberId" gorm:"type:uuid;not null"`
	CreatorID     string    `json:"creatorId" gorm:"type:uuid;not null"`
	Amount        float64   `json:"amount" gorm:"type:numeric(10,2)"`
	Currency      string    `json:"currency" gorm:"default:usd"`
	Status        string    `json:"status" gorm:"default:completed"`
	PaymentMethod string    `json:"paymentMethod" gorm:"column:payment_method;default:stripe"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
