package contract

import (
	"context"
	"errors"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/repository/specification"
)

// ErrDuplicateChat is returned by ChatRepository.Create when another caller
// has already created the chat for the same (report, organization) pair.
var ErrDuplicateChat = errors.New("chat already exists for report and organization")

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
