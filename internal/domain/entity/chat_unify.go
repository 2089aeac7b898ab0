package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// UnifiedChatRoom объединяет комнаты одной пары участников. Не хранится.
type UnifiedChatRoom struct {
	ID             string
	ParticipantA   uuid.UUID
	ParticipantB   uuid.UUID
	Representative *ChatRoom
	SourceRoomIDs  []uuid.UUID
	sources        []*ChatRoom
}

// UnifyChatRooms группирует комнаты по паре участников. Представителем группы становится комната
// с самым свежим сообщением. Результат упорядочен по активности, новые сверху.
func UnifyChatRooms(rooms []*ChatRoom) []UnifiedChatRoom {
	groups := make(map[string][]*ChatRoom)
	order := make([]string, 0)
	for _, room := range rooms {
		if room == nil {
			continue
		}
		key := room.PairKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], room)
	}

	result := make([]UnifiedChatRoom, 0, len(groups))
	for _, key := range order {
		members := dedupeRooms(groups[key])
		sort.Slice(members, func(i, j int) bool {
			return members[i].ID.String() < members[j].ID.String()
		})

		rep := members[0]
		for _, m := range members[1:] {
			if m.lastActivity().After(rep.lastActivity()) {
				rep = m
			}
		}

		ids := make([]uuid.UUID, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}

		result = append(result, UnifiedChatRoom{
			ID:             key,
			ParticipantA:   rep.ParticipantA,
			ParticipantB:   rep.ParticipantB,
			Representative: rep,
			SourceRoomIDs:  ids,
			sources:        members,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		ai, aj := result[i].LastActivity(), result[j].LastActivity()
		if ai.Equal(aj) {
			return result[i].ID < result[j].ID
		}
		return ai.After(aj)
	})
	return result
}

func dedupeRooms(rooms []*ChatRoom) []*ChatRoom {
	seen := make(map[uuid.UUID]struct{}, len(rooms))
	out := make([]*ChatRoom, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (u UnifiedChatRoom) LastActivity() time.Time {
	return u.Representative.lastActivity()
}

func (u UnifiedChatRoom) HasUnread(userID uuid.UUID) bool {
	for _, r := range u.sources {
		if r.HasUnread(userID) {
			return true
		}
	}
	return false
}

func (u UnifiedChatRoom) IsParticipant(userID uuid.UUID) bool {
	return u.ParticipantA == userID || u.ParticipantB == userID
}

// ResolveSendTarget выбирает реальную комнату для отправки: проектный чат заявки,
// иначе личный чат, иначе представителя. Синтетический ID никогда не возвращается.
func (u UnifiedChatRoom) ResolveSendTarget(requestID *uuid.UUID) (uuid.UUID, error) {
	if requestID != nil {
		for _, r := range u.sources {
			if r.IsProjectChat && r.RequestID != nil && *r.RequestID == *requestID {
				return r.ID, nil
			}
		}
		return uuid.Nil, apperror.ErrChatRoomNotFound
	}
	for _, r := range u.sources {
		if !r.IsProjectChat {
			return r.ID, nil
		}
	}
	return u.Representative.ID, nil
}

// FindUnified ищет объединённую комнату по ключу пары.
func FindUnified(rooms []UnifiedChatRoom, key string) (UnifiedChatRoom, bool) {
	for _, u := range rooms {
		if u.ID == key {
			return u, true
		}
	}
	return UnifiedChatRoom{}, false
}
