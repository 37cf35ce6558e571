package usecases

import (
	"context"

	"social-server/entities"
	"social-server/events"
	"social-server/repositories"

	"go.uber.org/zap"
)

type PostUseCase struct {
	posts     repositories.PostRepository
	users     repositories.UserRepository
	publisher events.Publisher
	log       *zap.Logger
}

func NewPostUseCase(posts repositories.PostRepository, users repositories.UserRepository, publisher events.Publisher, log *zap.Logger) *PostUseCase {
	return &PostUseCase{
		posts:     posts,
		users:     users,
		publisher: orNop(publisher),
		log:       orNopLogger(log),
	}
}

// CreatePost writes content onto receiverID's timeline. An empty receiverID
// posts onto the sender's own timeline.
func (uc *PostUseCase) CreatePost(ctx context.Context, senderID, receiverID, content string) (*entities.Post, error) {
	if isEmptyID(receiverID) {
		receiverID = senderID
	}
	content, err := checkMessage(ctx, uc.users, senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	post := &entities.Post{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, internalError(err)
	}

	publish(ctx, uc.publisher, uc.log, events.New(events.PostCreated, receiverID, post))
	return post, nil
}

// DeletePost removes a post; only its sender may do so.
func (uc *PostUseCase) DeletePost(ctx context.Context, postID, requestingUserID string) error {
	post, err := uc.posts.GetByID(ctx, postID)
	if err != nil {
		return internalError(err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.SenderID != requestingUserID {
		return ErrNotAllowedToDelete
	}
	if err := uc.posts.Delete(ctx, postID); err != nil {
		return internalError(err)
	}
	return nil
}
