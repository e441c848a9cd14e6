package models

import (
	"time"
)

// Follower est une arête user -> followed, unique par paire
type Follower struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID     string    `json:"userId" gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_follower_pair"`
	FollowedID string    `json:"followedId" gorm:"column:followed_id;type:uuid;not null;uniqueIndex:idx_follower_pair"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Follower) TableName() string {
	return "followers"
}
