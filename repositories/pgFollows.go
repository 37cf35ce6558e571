package repositories

import (
	"context"

	"social-server/db"
	"social-server/entities"
)

type followPgRepository struct {
	db db.Database
}

func NewFollowPgRepository(database db.Database) FollowRepository {
	return &followPgRepository{db: database}
}

func (r *followPgRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followPgRepository) Create(ctx context.Context, follow *entities.Follow) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(follow).Error)
}

// Delete reports whether an edge was removed.
func (r *followPgRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	res := r.db.GetDB().WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&entities.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (r *followPgRepository) ListFollowees(ctx context.Context, followerID string) ([]string, error) {
	ids := []string{}
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at ASC").Order("id ASC").
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (r *followPgRepository) ListFollowers(ctx context.Context, followeeID string) ([]string, error) {
	ids := []string{}
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Follow{}).
		Where("followee_id = ?", followeeID).
		Order("created_at ASC").Order("id ASC").
		Pluck("follower_id", &ids).Error
	return ids, err
}
