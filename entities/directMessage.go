package entities

import (
	"time"

	"gorm.io/gorm"
)

// DirectMessage is a private message from SenderID to ReceiverID.
type DirectMessage struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);index;not null" json:"senderId"`
	ReceiverID string    `gorm:"type:varchar(36);index;not null" json:"receiverId"`
	Content    string    `gorm:"type:varchar(1120);not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (m *DirectMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = newID()
	}
	m.CreatedAt = timestamp(m.CreatedAt)
	return nil
}
