package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

const chatRoomColumns = `id, participant_a, participant_b, is_project_chat, request_id, last_message_text,
	last_message_sender, last_message_at, unread_a, unread_b, created_at, updated_at`

type chatRoomRow struct {
	ID                uuid.UUID      `db:"id"`
	ParticipantA      uuid.UUID      `db:"participant_a"`
	ParticipantB      uuid.UUID      `db:"participant_b"`
	IsProjectChat     bool           `db:"is_project_chat"`
	RequestID         *uuid.UUID     `db:"request_id"`
	LastMessageText   sql.NullString `db:"last_message_text"`
	LastMessageSender *uuid.UUID     `db:"last_message_sender"`
	LastMessageAt     sql.NullTime   `db:"last_message_at"`
	UnreadA           bool           `db:"unread_a"`
	UnreadB           bool           `db:"unread_b"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r chatRoomRow) toEntity() *entity.ChatRoom {
	room := &entity.ChatRoom{
		ID:            r.ID,
		ParticipantA:  r.ParticipantA,
		ParticipantB:  r.ParticipantB,
		IsProjectChat: r.IsProjectChat,
		RequestID:     r.RequestID,
		UnreadA:       r.UnreadA,
		UnreadB:       r.UnreadB,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.LastMessageAt.Valid && r.LastMessageSender != nil {
		room.LastMessage = &entity.LastMessage{
			Text:     r.LastMessageText.String,
			SenderID: *r.LastMessageSender,
			SentAt:   r.LastMessageAt.Time,
		}
	}
	return room
}

type messageRow struct {
	ID        uuid.UUID `db:"id"`
	RoomID    uuid.UUID `db:"room_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

type ChatRepositoryAdapter struct {
	db *sqlx.DB
}

func NewChatRepositoryAdapter(db *sqlx.DB) *ChatRepositoryAdapter {
	return &ChatRepositoryAdapter{db: db}
}

func (r *ChatRepositoryAdapter) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	query := `
		INSERT INTO chat_rooms (id, participant_a, participant_b, is_project_chat, request_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		room.ID,
		room.ParticipantA,
		room.ParticipantB,
		room.IsProjectChat,
		room.RequestID,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return execErr(err, nil, "не удалось создать чат")
	}
	return nil
}

func (r *ChatRepositoryAdapter) FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error) {
	var row chatRoomRow
	query := `SELECT ` + chatRoomColumns + ` FROM chat_rooms WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, getErr(err, apperror.ErrChatRoomNotFound, "не удалось получить чат")
	}
	return row.toEntity(), nil
}

func (r *ChatRepositoryAdapter) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatRoom, error) {
	var rows []chatRoomRow
	query := `SELECT ` + chatRoomColumns + ` FROM chat_rooms WHERE participant_a = $1 OR participant_b = $1`
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить чаты")
	}
	out := make([]*entity.ChatRoom, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *ChatRepositoryAdapter) SaveMessage(ctx context.Context, room *entity.ChatRoom, msg *entity.Message) error {
	db := conn(ctx, r.db)
	_, err := db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, room_id, sender_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.RoomID, msg.SenderID, msg.Text, msg.CreatedAt,
	)
	if err != nil {
		return execErr(err, nil, "не удалось сохранить сообщение")
	}

	// непрочитанным сообщение становится у второго участника
	query := `
		UPDATE chat_rooms
		SET last_message_text = $2, last_message_sender = $3, last_message_at = $4,
		    unread_a = unread_a OR participant_a <> $3,
		    unread_b = unread_b OR participant_b <> $3,
		    updated_at = $4
		WHERE id = $1
	`
	res, err := db.ExecContext(ctx, query, room.ID, msg.Text, msg.SenderID, msg.CreatedAt)
	if err != nil {
		return execErr(err, nil, "не удалось обновить чат")
	}
	return requireAffected(res, apperror.ErrChatRoomNotFound)
}

func (r *ChatRepositoryAdapter) ListMessages(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	var rows []messageRow
	query := `SELECT id, room_id, sender_id, text, created_at FROM chat_messages
		WHERE room_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, roomID, limitOrAll(limit), offset); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить сообщения")
	}
	out := make([]*entity.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Message{
			ID:        row.ID,
			RoomID:    row.RoomID,
			SenderID:  row.SenderID,
			Text:      row.Text,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *ChatRepositoryAdapter) MarkRead(ctx context.Context, roomID, userID uuid.UUID) error {
	query := `
		UPDATE chat_rooms
		SET unread_a = CASE WHEN participant_a = $2 THEN FALSE ELSE unread_a END,
		    unread_b = CASE WHEN participant_b = $2 THEN FALSE ELSE unread_b END
		WHERE id = $1
	`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, roomID, userID)
	if err != nil {
		return execErr(err, nil, "не удалось отметить чат прочитанным")
	}
	return requireAffected(res, apperror.ErrChatRoomNotFound)
}
