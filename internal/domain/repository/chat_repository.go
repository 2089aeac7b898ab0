package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type ChatRepository interface {
	// CreateRoom не трогает уже существующую комнату с тем же ID.
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error)
	ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatRoom, error)
	// SaveMessage сохраняет сообщение, обновляет снимок последнего сообщения и флаг непрочитанного у получателя.
	SaveMessage(ctx context.Context, room *entity.ChatRoom, msg *entity.Message) error
	ListMessages(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Message, error)
	MarkRead(ctx context.Context, roomID, userID uuid.UUID) error
}
