package usecases

import (
	"context"
	"errors"

	"social-server/entities"
	"social-server/events"
	"social-server/repositories"

	"go.uber.org/zap"
)

type FollowUseCase struct {
	follows   repositories.FollowRepository
	users     repositories.UserRepository
	publisher events.Publisher
	log       *zap.Logger
}

func NewFollowUseCase(follows repositories.FollowRepository, users repositories.UserRepository, publisher events.Publisher, log *zap.Logger) *FollowUseCase {
	return &FollowUseCase{
		follows:   follows,
		users:     users,
		publisher: orNop(publisher),
		log:       orNopLogger(log),
	}
}

// Follow creates the edge followerID -> followeeID.
func (uc *FollowUseCase) Follow(ctx context.Context, followerID, followeeID string) error {
	if isEmptyID(followerID) || isEmptyID(followeeID) {
		return ErrEmptyUser
	}
	if followerID == followeeID {
		return ErrSelfFollow
	}

	exists, err := uc.follows.Exists(ctx, followerID, followeeID)
	if err != nil {
		return internalError(err)
	}
	if exists {
		return ErrAlreadyFollowing
	}

	// a token can outlive its account
	if err := mustExist(ctx, uc.users, followerID, ErrUserNotFound); err != nil {
		return err
	}
	if err := mustExist(ctx, uc.users, followeeID, ErrUserNotFound); err != nil {
		return err
	}

	follow := &entities.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := uc.follows.Create(ctx, follow); err != nil {
		// a concurrent Follow can pass the existence check; the unique index decides
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return internalError(err)
	}

	publish(ctx, uc.publisher, uc.log, events.New(events.FollowCreated, followeeID, follow))
	return nil
}

// Unfollow removes an existing edge.
func (uc *FollowUseCase) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if isEmptyID(followerID) || isEmptyID(followeeID) {
		return ErrEmptyUser
	}
	removed, err := uc.follows.Delete(ctx, followerID, followeeID)
	if err != nil {
		return internalError(err)
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}

// GetFollows returns the ids followerID follows, in no particular order.
func (uc *FollowUseCase) GetFollows(ctx context.Context, followerID string) ([]string, error) {
	if isEmptyID(followerID) {
		return nil, ErrEmptyUser
	}
	ids, err := uc.follows.ListFollowees(ctx, followerID)
	if err != nil {
		return nil, internalError(err)
	}
	return ids, nil
}

func (uc *FollowUseCase) GetFollowers(ctx context.Context, userID string) ([]string, error) {
	if isEmptyID(userID) {
		return nil, ErrEmptyUser
	}
	ids, err := uc.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	return ids, nil
}
