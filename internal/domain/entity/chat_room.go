package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/validation"
)

// chatNamespace используется для детерминированных идентификаторов комнат.
var chatNamespace = uuid.MustParse("6f1c2a5e-8d0b-4c53-9a43-2f7e51b0c9d4")

type LastMessage struct {
	Text     string
	SenderID uuid.UUID
	SentAt   time.Time
}

// ChatRoom хранит пару участников в отсортированном виде: ParticipantA < ParticipantB.
type ChatRoom struct {
	ID            uuid.UUID
	ParticipantA  uuid.UUID
	ParticipantB  uuid.UUID
	IsProjectChat bool
	RequestID     *uuid.UUID
	LastMessage   *LastMessage
	UnreadA       bool
	UnreadB       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PairKey: ключ пары участников, не зависящий от порядка.
func PairKey(a, b uuid.UUID) string {
	first, second := sortPair(a, b)
	return first.String() + "_" + second.String()
}

// ParsePairKey разбирает ключ пары обратно в идентификаторы.
func ParsePairKey(key string) (uuid.UUID, uuid.UUID, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.ErrCodeValidation, "некорректный ключ чата")
	}
	a, errA := uuid.Parse(parts[0])
	b, errB := uuid.Parse(parts[1])
	if errA != nil || errB != nil {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.ErrCodeValidation, "некорректный ключ чата")
	}
	return a, b, nil
}

func sortPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) <= 0 {
		return a, b
	}
	return b, a
}

// ProjectChatRoomID выводится из заявки, поэтому повторное подтверждение найма не создаст второй чат.
func ProjectChatRoomID(requestID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(chatNamespace, []byte("project:"+requestID.String()))
}

func DirectChatRoomID(a, b uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(chatNamespace, []byte("direct:"+PairKey(a, b)))
}

func NewProjectChatRoom(requestID, ownerID, photographerID uuid.UUID) (*ChatRoom, error) {
	room, err := newChatRoom(ProjectChatRoomID(requestID), ownerID, photographerID)
	if err != nil {
		return nil, err
	}
	room.IsProjectChat = true
	room.RequestID = &requestID
	return room, nil
}

func NewDirectChatRoom(a, b uuid.UUID) (*ChatRoom, error) {
	return newChatRoom(DirectChatRoomID(a, b), a, b)
}

func newChatRoom(id, a, b uuid.UUID) (*ChatRoom, error) {
	if a == b {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя создать чат с самим собой")
	}
	first, second := sortPair(a, b)
	now := time.Now()
	return &ChatRoom{
		ID:           id,
		ParticipantA: first,
		ParticipantB: second,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (c *ChatRoom) PairKey() string {
	return PairKey(c.ParticipantA, c.ParticipantB)
}

func (c *ChatRoom) IsParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

func (c *ChatRoom) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

func (c *ChatRoom) HasUnread(userID uuid.UUID) bool {
	switch userID {
	case c.ParticipantA:
		return c.UnreadA
	case c.ParticipantB:
		return c.UnreadB
	}
	return false
}

// lastActivity: время последнего сообщения, для пустых комнат время создания.
func (c *ChatRoom) lastActivity() time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.SentAt
	}
	return c.CreatedAt
}

type Message struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	SenderID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

func NewMessage(room *ChatRoom, senderID uuid.UUID, text string) (*Message, error) {
	if !room.IsParticipant(senderID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "вы не участник этого чата")
	}
	text, err := validation.ValidateText("сообщение", text, true, validation.MaxMessageLength)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:        uuid.New(),
		RoomID:    room.ID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}
