package usecases

import (
	"context"
	"strings"
	"unicode/utf8"

	"social-server/entities"
	"social-server/repositories"
)

// checkMessage runs the shared post/direct message checks in their fixed
// order: sender exists, receiver exists, content non-empty, content length.
// It returns the trimmed content.
func checkMessage(ctx context.Context, users repositories.UserRepository, senderID, receiverID, content string) (string, error) {
	if err := mustExist(ctx, users, senderID, ErrSenderNotFound); err != nil {
		return "", err
	}
	if err := mustExist(ctx, users, receiverID, ErrReceiverNotFound); err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentEmpty
	}
	if utf8.RuneCountInString(content) > entities.MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func mustExist(ctx context.Context, users repositories.UserRepository, id string, notFound *Error) error {
	if isEmptyID(id) {
		return notFound
	}
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return notFound
	}
	return nil
}
