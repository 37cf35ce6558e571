package entities

import (
	"time"

	"gorm.io/gorm"
)

// MaxContentLength is the limit, in runes, for post and direct message content.
const MaxContentLength = 280

// Post is written by SenderID onto ReceiverID's timeline.
type Post struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);index;not null" json:"senderId"`
	ReceiverID string    `gorm:"type:varchar(36);index;not null" json:"receiverId"`
	Content    string    `gorm:"type:varchar(1120);not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = timestamp(p.CreatedAt)
	return nil
}

// PostView is a post joined with its sender's display name.
type PostView struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
