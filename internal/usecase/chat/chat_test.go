package chat_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/chat"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

type env struct {
	chats        *usecasetest.ChatRepo
	notifier     *usecasetest.Notifier
	sender       *chat.SendMessageUseCase
	owner        uuid.UUID
	photographer uuid.UUID
	requestA     uuid.UUID
	requestB     uuid.UUID
}

// newEnv: два проектных чата одной пары, личного чата нет.
func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		notifier:     &usecasetest.Notifier{},
		owner:        uuid.New(),
		photographer: uuid.New(),
		requestA:     uuid.New(),
		requestB:     uuid.New(),
	}
	roomA, err := entity.NewProjectChatRoom(e.requestA, e.owner, e.photographer)
	require.NoError(t, err)
	roomB, err := entity.NewProjectChatRoom(e.requestB, e.owner, e.photographer)
	require.NoError(t, err)
	e.chats = usecasetest.NewChatRepo(roomA, roomB)
	e.sender = chat.NewSendMessageUseCase(e.chats, e.notifier)
	return e
}

func (e *env) pairKey() string {
	return entity.PairKey(e.owner, e.photographer)
}

func TestListUnifiedRooms_OnePerCounterpart(t *testing.T) {
	e := newEnv(t)

	rooms, err := chat.NewListUnifiedRoomsUseCase(e.chats).Execute(context.Background(), e.owner)

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, e.pairKey(), rooms[0].ID)
	assert.Len(t, rooms[0].SourceRoomIDs, 2)
}

func TestSendMessage_UpdatesSnapshotAndNotifies(t *testing.T) {
	e := newEnv(t)
	roomID := entity.ProjectChatRoomID(e.requestA)

	msg, err := e.sender.Execute(context.Background(), roomID, e.owner, "  Когда будут фото?  ")

	require.NoError(t, err)
	assert.Equal(t, "Когда будут фото?", msg.Text)
	room := e.chats.Rooms[roomID]
	require.NotNil(t, room.LastMessage)
	assert.Equal(t, e.owner, room.LastMessage.SenderID)
	assert.True(t, room.HasUnread(e.photographer))
	assert.False(t, room.HasUnread(e.owner))
	assert.Equal(t, []entity.NotificationType{entity.NotificationNewMessage}, e.notifier.For(e.photographer))
}

func TestSendMessage_OutsiderForbidden(t *testing.T) {
	e := newEnv(t)

	_, err := e.sender.Execute(context.Background(), entity.ProjectChatRoomID(e.requestA), uuid.New(), "привет")

	assert.True(t, apperror.IsForbidden(err))
	assert.Empty(t, e.chats.Messages)
}

func TestSendToUnified_ResolvesRealRoom(t *testing.T) {
	e := newEnv(t)
	uc := chat.NewSendToUnifiedUseCase(e.chats, e.sender)
	ctx := context.Background()

	msg, err := uc.Execute(ctx, chat.SendToUnifiedInput{
		UnifiedID: e.pairKey(), SenderID: e.photographer, RequestID: &e.requestB, Text: "Готово",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectChatRoomID(e.requestB), msg.RoomID)

	msg, err = uc.Execute(ctx, chat.SendToUnifiedInput{UnifiedID: e.pairKey(), SenderID: e.owner, Text: "Спасибо"})
	require.NoError(t, err)
	assert.Contains(t, []uuid.UUID{entity.ProjectChatRoomID(e.requestA), entity.ProjectChatRoomID(e.requestB)}, msg.RoomID,
		"без личного чата сообщение уходит в представителя")

	direct, err := chat.NewStartDirectChatUseCase(e.chats).Execute(ctx, e.owner, e.photographer)
	require.NoError(t, err)
	msg, err = uc.Execute(ctx, chat.SendToUnifiedInput{UnifiedID: e.pairKey(), SenderID: e.owner, Text: "Вопрос не по проекту"})
	require.NoError(t, err)
	assert.Equal(t, direct.ID, msg.RoomID)

	for _, m := range e.chats.Messages {
		assert.Contains(t, e.chats.Rooms, m.RoomID, "сообщение всегда пишется в существующую комнату")
	}
}

func TestSendToUnified_UnknownProject(t *testing.T) {
	e := newEnv(t)
	other := uuid.New()

	_, err := chat.NewSendToUnifiedUseCase(e.chats, e.sender).Execute(context.Background(), chat.SendToUnifiedInput{
		UnifiedID: e.pairKey(), SenderID: e.owner, RequestID: &other, Text: "x",
	})

	assert.True(t, apperror.IsNotFound(err))
}

func TestSendToUnified_NotInPair(t *testing.T) {
	e := newEnv(t)

	_, err := chat.NewSendToUnifiedUseCase(e.chats, e.sender).Execute(context.Background(), chat.SendToUnifiedInput{
		UnifiedID: e.pairKey(), SenderID: uuid.New(), Text: "x",
	})

	assert.True(t, apperror.IsNotFound(err))
}

func TestStartDirectChat_Idempotent(t *testing.T) {
	e := newEnv(t)
	uc := chat.NewStartDirectChatUseCase(e.chats)

	first, err := uc.Execute(context.Background(), e.owner, e.photographer)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), e.photographer, e.owner)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, e.chats.Rooms, 3)

	_, err = uc.Execute(context.Background(), e.owner, e.owner)
	assert.True(t, apperror.IsValidation(err))
}

func TestListMessagesAndMarkRead(t *testing.T) {
	e := newEnv(t)
	roomID := entity.ProjectChatRoomID(e.requestA)
	_, err := e.sender.Execute(context.Background(), roomID, e.owner, "первое")
	require.NoError(t, err)

	msgs, err := chat.NewListMessagesUseCase(e.chats).Execute(context.Background(), roomID, e.photographer, 0, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	_, err = chat.NewListMessagesUseCase(e.chats).Execute(context.Background(), roomID, uuid.New(), 0, 0)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, chat.NewMarkReadUseCase(e.chats).Execute(context.Background(), roomID, e.photographer))
	assert.False(t, e.chats.Rooms[roomID].HasUnread(e.photographer))
}
