package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type ListUnifiedRoomsUseCase struct {
	chatRepo repository.ChatRepository
}

func NewListUnifiedRoomsUseCase(chatRepo repository.ChatRepository) *ListUnifiedRoomsUseCase {
	return &ListUnifiedRoomsUseCase{chatRepo: chatRepo}
}

// Execute возвращает по одной комнате на собеседника, свежие сверху.
func (uc *ListUnifiedRoomsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]entity.UnifiedChatRoom, error) {
	rooms, err := uc.chatRepo.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entity.UnifyChatRooms(rooms), nil
}

type StartDirectChatUseCase struct {
	chatRepo repository.ChatRepository
}

func NewStartDirectChatUseCase(chatRepo repository.ChatRepository) *StartDirectChatUseCase {
	return &StartDirectChatUseCase{chatRepo: chatRepo}
}

// Execute открывает личный чат пары. Повторный вызов возвращает ту же комнату.
func (uc *StartDirectChatUseCase) Execute(ctx context.Context, userID, otherID uuid.UUID) (*entity.ChatRoom, error) {
	room, err := entity.NewDirectChatRoom(userID, otherID)
	if err != nil {
		return nil, err
	}
	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return uc.chatRepo.FindRoomByID(ctx, room.ID)
}

type ListMessagesUseCase struct {
	chatRepo repository.ChatRepository
}

func NewListMessagesUseCase(chatRepo repository.ChatRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{chatRepo: chatRepo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, roomID, userID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	room, err := uc.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsParticipant(userID) {
		return nil, apperror.ErrChatRoomNotFound
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.chatRepo.ListMessages(ctx, roomID, limit, offset)
}

type MarkReadUseCase struct {
	chatRepo repository.ChatRepository
}

func NewMarkReadUseCase(chatRepo repository.ChatRepository) *MarkReadUseCase {
	return &MarkReadUseCase{chatRepo: chatRepo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, roomID, userID uuid.UUID) error {
	room, err := uc.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsParticipant(userID) {
		return apperror.ErrChatRoomNotFound
	}
	return uc.chatRepo.MarkRead(ctx, roomID, userID)
}

type SendMessageUseCase struct {
	chatRepo repository.ChatRepository
	notifier gateway.Notifier
}

func NewSendMessageUseCase(chatRepo repository.ChatRepository, notifier gateway.Notifier) *SendMessageUseCase {
	return &SendMessageUseCase{chatRepo: chatRepo, notifier: notifier}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, roomID, senderID uuid.UUID, text string) (*entity.Message, error) {
	room, err := uc.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return uc.send(ctx, room, senderID, text)
}

func (uc *SendMessageUseCase) send(ctx context.Context, room *entity.ChatRoom, senderID uuid.UUID, text string) (*entity.Message, error) {
	msg, err := entity.NewMessage(room, senderID, text)
	if err != nil {
		return nil, err
	}
	if err := uc.chatRepo.SaveMessage(ctx, room, msg); err != nil {
		return nil, err
	}

	preview := msg.Text
	if r := []rune(preview); len(r) > 80 {
		preview = string(r[:80]) + "…"
	}
	uc.notifier.Notify(ctx, room.OtherParticipant(senderID), entity.Notification{
		Title:     "Новое сообщение",
		Message:   preview,
		Type:      entity.NotificationNewMessage,
		Link:      "/chats/" + room.PairKey(),
		RelatedID: &room.ID,
	})
	return msg, nil
}

type SendToUnifiedInput struct {
	UnifiedID string
	SenderID  uuid.UUID
	RequestID *uuid.UUID
	Text      string
}

type SendToUnifiedUseCase struct {
	chatRepo repository.ChatRepository
	sender   *SendMessageUseCase
}

func NewSendToUnifiedUseCase(chatRepo repository.ChatRepository, sender *SendMessageUseCase) *SendToUnifiedUseCase {
	return &SendToUnifiedUseCase{chatRepo: chatRepo, sender: sender}
}

// Execute отправляет сообщение в объединённую комнату через реальную комнату-источник.
func (uc *SendToUnifiedUseCase) Execute(ctx context.Context, input SendToUnifiedInput) (*entity.Message, error) {
	a, b, err := entity.ParsePairKey(input.UnifiedID)
	if err != nil {
		return nil, err
	}
	if input.SenderID != a && input.SenderID != b {
		return nil, apperror.ErrChatRoomNotFound
	}

	rooms, err := uc.chatRepo.ListRoomsForUser(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}
	unified, ok := entity.FindUnified(entity.UnifyChatRooms(rooms), input.UnifiedID)
	if !ok {
		return nil, apperror.ErrChatRoomNotFound
	}

	targetID, err := unified.ResolveSendTarget(input.RequestID)
	if err != nil {
		return nil, err
	}
	room, err := uc.chatRepo.FindRoomByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return uc.sender.send(ctx, room, input.SenderID, input.Text)
}
