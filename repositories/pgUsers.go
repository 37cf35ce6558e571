package repositories

import (
	"context"
	"errors"
	"strings"

	"social-server/db"
	"social-server/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(ctx context.Context, user *entities.User) error {
	return translate(r.db.GetDB().WithContext(ctx).Create(user).Error)
}

// GetByID returns nil, nil when no user matches.
func (r *userPgRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userPgRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.first(ctx, "normalized_username = ?", entities.NormalizeUsername(username))
}

func (r *userPgRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "email = ?", entities.NormalizeEmail(email))
}

func (r *userPgRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Usernames maps each known id to its username; unknown ids are absent.
func (r *userPgRepository) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []struct {
		ID       string
		Username string
	}
	err := r.db.GetDB().WithContext(ctx).Model(&entities.User{}).
		Select("id", "username").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Username
	}
	return names, nil
}

func (r *userPgRepository) Search(ctx context.Context, query string, limit int) ([]entities.User, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(entities.NormalizeUsername(query)) + "%"
	var users []entities.User
	err := r.db.GetDB().WithContext(ctx).
		Where("normalized_username LIKE ? ESCAPE '!'", pattern).
		Order("normalized_username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userPgRepository) Update(ctx context.Context, user *entities.User) error {
	return translate(r.db.GetDB().WithContext(ctx).Save(user).Error)
}

// DeleteCascade removes the user together with their follow edges, posts and messages.
func (r *userPgRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&entities.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&entities.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&entities.DirectMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.User{}).Error
	})
}

func (r *userPgRepository) first(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
