package entities

import (
	"time"

	"gorm.io/gorm"
)

// Follow is a directed edge: FollowerID follows FolloweeID.
type Follow struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FollowerID string    `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique;index:idx_follow_follower" json:"followerId"`
	FolloweeID string    `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique;index:idx_follow_followee" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = newID()
	}
	f.CreatedAt = timestamp(f.CreatedAt)
	return nil
}
