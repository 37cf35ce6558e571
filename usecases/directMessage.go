package usecases

import (
	"context"

	"social-server/entities"
	"social-server/events"
	"social-server/repositories"

	"go.uber.org/zap"
)

type DirectMessageUseCase struct {
	messages  repositories.DirectMessageRepository
	users     repositories.UserRepository
	publisher events.Publisher
	log       *zap.Logger
}

func NewDirectMessageUseCase(messages repositories.DirectMessageRepository, users repositories.UserRepository, publisher events.Publisher, log *zap.Logger) *DirectMessageUseCase {
	return &DirectMessageUseCase{
		messages:  messages,
		users:     users,
		publisher: orNop(publisher),
		log:       orNopLogger(log),
	}
}

// SendDirectMessage validates and stores a private message. The first failing
// check wins: sender, receiver, empty content, content length.
func (uc *DirectMessageUseCase) SendDirectMessage(ctx context.Context, senderID, receiverID, content string) (*entities.DirectMessage, error) {
	content, err := checkMessage(ctx, uc.users, senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	msg := &entities.DirectMessage{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, internalError(err)
	}

	publish(ctx, uc.publisher, uc.log, events.New(events.DirectMessageSent, receiverID, msg))
	return msg, nil
}

// GetConversation lists messages between userID and otherID, oldest first.
func (uc *DirectMessageUseCase) GetConversation(ctx context.Context, userID, otherID string) ([]entities.DirectMessage, error) {
	if isEmptyID(userID) || isEmptyID(otherID) {
		return nil, ErrEmptyUser
	}
	if err := mustExist(ctx, uc.users, otherID, ErrUserNotFound); err != nil {
		return nil, err
	}
	msgs, err := uc.messages.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, internalError(err)
	}
	return msgs, nil
}
