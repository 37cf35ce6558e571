package repositories

import (
	"context"

	"social-server/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
	Search(ctx context.Context, query string, limit int) ([]entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	DeleteCascade(ctx context.Context, id string) error
}

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	Create(ctx context.Context, follow *entities.Follow) error
	Delete(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowees(ctx context.Context, followerID string) ([]string, error)
	ListFollowers(ctx context.Context, followeeID string) ([]string, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	GetByID(ctx context.Context, id string) (*entities.Post, error)
	Delete(ctx context.Context, id string) error
	ListByReceiver(ctx context.Context, receiverID string) ([]entities.Post, error)
	ListBySenders(ctx context.Context, senderIDs []string) ([]entities.Post, error)
}

type DirectMessageRepository interface {
	Create(ctx context.Context, msg *entities.DirectMessage) error
	ListConversation(ctx context.Context, userID, otherID string) ([]entities.DirectMessage, error)
}
