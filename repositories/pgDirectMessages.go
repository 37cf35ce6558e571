package repositories

import (
	"context"

	"social-server/db"
	"social-server/entities"
)

type directMessagePgRepository struct {
	db db.Database
}

func NewDirectMessagePgRepository(database db.Database) DirectMessageRepository {
	return &directMessagePgRepository{db: database}
}

func (r *directMessagePgRepository) Create(ctx context.Context, msg *entities.DirectMessage) error {
	return r.db.GetDB().WithContext(ctx).Create(msg).Error
}

// ListConversation returns messages exchanged between both users, oldest first.
func (r *directMessagePgRepository) ListConversation(ctx context.Context, userID, otherID string) ([]entities.DirectMessage, error) {
	msgs := []entities.DirectMessage{}
	err := r.db.GetDB().WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userID, otherID, otherID, userID).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}
