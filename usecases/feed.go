package usecases

import (
	"context"

	"social-server/entities"
	"social-server/repositories"
)

type followeeLister interface {
	GetFollows(ctx context.Context, followerID string) ([]string, error)
}

type FeedUseCase struct {
	follows followeeLister
	posts   repositories.PostRepository
	names   *NameResolver
}

func NewFeedUseCase(follows followeeLister, posts repositories.PostRepository, names *NameResolver) *FeedUseCase {
	return &FeedUseCase{follows: follows, posts: posts, names: names}
}

// GetFeed returns posts written by the users userID follows, newest first.
func (uc *FeedUseCase) GetFeed(ctx context.Context, userID string) ([]entities.PostView, error) {
	followees, err := uc.follows.GetFollows(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		return []entities.PostView{}, nil
	}

	posts, err := uc.posts.ListBySenders(ctx, followees)
	if err != nil {
		return nil, internalError(err)
	}
	sortNewestFirst(posts)

	// names are looked up for the senders actually present, not every followee
	return uc.names.Views(ctx, posts)
}
