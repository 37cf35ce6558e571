package repositories

import (
	"context"
	"errors"

	"social-server/db"
	"social-server/entities"

	"gorm.io/gorm"
)

type postPgRepository struct {
	db db.Database
}

func NewPostPgRepository(database db.Database) PostRepository {
	return &postPgRepository{db: database}
}

func (r *postPgRepository) Create(ctx context.Context, post *entities.Post) error {
	return r.db.GetDB().WithContext(ctx).Create(post).Error
}

// GetByID returns nil, nil when the post does not exist.
func (r *postPgRepository) GetByID(ctx context.Context, id string) (*entities.Post, error) {
	var post entities.Post
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postPgRepository) Delete(ctx context.Context, id string) error {
	return r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Post{}).Error
}

func (r *postPgRepository) ListByReceiver(ctx context.Context, receiverID string) ([]entities.Post, error) {
	posts := []entities.Post{}
	err := r.db.GetDB().WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postPgRepository) ListBySenders(ctx context.Context, senderIDs []string) ([]entities.Post, error) {
	posts := []entities.Post{}
	if len(senderIDs) == 0 {
		return posts, nil
	}
	err := r.db.GetDB().WithContext(ctx).
		Where("sender_id IN ?", senderIDs).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}
