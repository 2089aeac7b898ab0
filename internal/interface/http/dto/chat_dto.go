package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type StartChatRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type SendMessageRequest struct {
	Text      string  `json:"text" binding:"required"`
	RequestID *string `json:"request_id"`
}

type LastMessageDTO struct {
	Text     string    `json:"text"`
	SenderID uuid.UUID `json:"sender_id"`
	SentAt   time.Time `json:"sent_at"`
}

type ChatRoomResponse struct {
	ID            uuid.UUID       `json:"id"`
	OtherUserID   uuid.UUID       `json:"other_user_id"`
	IsProjectChat bool            `json:"is_project_chat"`
	RequestID     *uuid.UUID      `json:"request_id"`
	LastMessage   *LastMessageDTO `json:"last_message"`
	HasUnread     bool            `json:"has_unread"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToChatRoomResponse(room *entity.ChatRoom, viewerID uuid.UUID) ChatRoomResponse {
	return ChatRoomResponse{
		ID:            room.ID,
		OtherUserID:   room.OtherParticipant(viewerID),
		IsProjectChat: room.IsProjectChat,
		RequestID:     room.RequestID,
		LastMessage:   toLastMessageDTO(room.LastMessage),
		HasUnread:     room.HasUnread(viewerID),
		CreatedAt:     room.CreatedAt,
	}
}

func toLastMessageDTO(m *entity.LastMessage) *LastMessageDTO {
	if m == nil {
		return nil
	}
	return &LastMessageDTO{Text: m.Text, SenderID: m.SenderID, SentAt: m.SentAt}
}

// UnifiedChatResponse описывает одну строку списка чатов, в которой слиты все комнаты пары.
type UnifiedChatResponse struct {
	ID            string          `json:"id"`
	OtherUserID   uuid.UUID       `json:"other_user_id"`
	RoomIDs       []uuid.UUID     `json:"room_ids"`
	LastMessage   *LastMessageDTO `json:"last_message"`
	HasUnread     bool            `json:"has_unread"`
	LastActivity  time.Time       `json:"last_activity"`
	IsProjectChat bool            `json:"is_project_chat"`
}

func ToUnifiedChatResponses(rooms []entity.UnifiedChatRoom, viewerID uuid.UUID) []UnifiedChatResponse {
	out := make([]UnifiedChatResponse, 0, len(rooms))
	for _, u := range rooms {
		out = append(out, UnifiedChatResponse{
			ID:            u.ID,
			OtherUserID:   u.Representative.OtherParticipant(viewerID),
			RoomIDs:       u.SourceRoomIDs,
			LastMessage:   toLastMessageDTO(u.Representative.LastMessage),
			HasUnread:     u.HasUnread(viewerID),
			LastActivity:  u.LastActivity(),
			IsProjectChat: u.Representative.IsProjectChat,
		})
	}
	return out
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMessageResponse(m *entity.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func ToMessageResponses(messages []*entity.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageResponse(m))
	}
	return out
}
