package usecases

import (
	"context"
	"sort"

	"social-server/entities"
	"social-server/repositories"
)

type TimelineUseCase struct {
	posts repositories.PostRepository
	names *NameResolver
}

func NewTimelineUseCase(posts repositories.PostRepository, names *NameResolver) *TimelineUseCase {
	return &TimelineUseCase{posts: posts, names: names}
}

// GetTimeline returns the posts received by userID, newest first.
func (uc *TimelineUseCase) GetTimeline(ctx context.Context, userID string) ([]entities.Post, error) {
	if isEmptyID(userID) {
		return nil, ErrEmptyUser
	}
	posts, err := uc.posts.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	sortNewestFirst(posts)
	return posts, nil
}

// GetTimelineViews is GetTimeline with sender names attached.
func (uc *TimelineUseCase) GetTimelineViews(ctx context.Context, userID string) ([]entities.PostView, error) {
	posts, err := uc.GetTimeline(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.names.Views(ctx, posts)
}

// sortNewestFirst orders by creation time descending. Ids are time ordered,
// so equal timestamps fall back to the later insertion first.
func sortNewestFirst(posts []entities.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}
