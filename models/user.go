package models

import (
	"time"
)

// Role définit le type de compte d'un utilisateur
type Role string

const (
	FanRole     Role = "FAN"
	CreatorRole Role = "CREATOR"
)

// User représente un profil dans la base de données
type User struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email             string    `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password          string    `json:"password,omitempty" binding:"required,min=6"`
	UserName          string    `json:"username" gorm:"column:user_name;uniqueIndex"`
	Role              Role      `json:"accountType" gorm:"type:varchar(20);default:'FAN'"`
	Bio               string    `json:"bio"`
	AvatarURL         string    `json:"avatarUrl" gorm:"column:avatar_url"`
	StripeCustomerId  string    `json:"stripeCustomerId"`
	SubscriptionPrice float64   `json:"subscriptionPrice" gorm:"type:numeric(10,2);default:4.99"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserCreate modèle pour l'inscription
type UserCreate struct {
	Email    string `json:"email" binding:"required,email" example:"fan@exemple.com"`
	Password string `json:"password" binding:"required,min=6" example:"Secret123"`
	UserName string `json:"username" example:"apple_fan"`
}

// UserUpdate modèle pour le formulaire de paramètres
type UserUpdate struct {
	UserName          string   `json:"username"`
	Bio               string   `json:"bio"`
	SubscriptionPrice *float64 `json:"subscriptionPrice"`
}

// AccountTypeUpdate modèle pour l'onboarding fan/creator
type AccountTypeUpdate struct {
	AccountType Role `json:"accountType" binding:"required" example:"CREATOR"`
}
