package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

func roomWithMessage(t *testing.T, room *ChatRoom, err error, at time.Time) *ChatRoom {
	t.Helper()
	require.NoError(t, err)
	room.LastMessage = &LastMessage{Text: "hi", SenderID: room.ParticipantA, SentAt: at}
	return room
}

func TestPairKey_OrderIndependent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, PairKey(a, b), PairKey(b, a))

	x, y, err := ParsePairKey(PairKey(a, b))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, []uuid.UUID{x, y})
}

func TestUnifyChatRooms_GroupsByPair(t *testing.T) {
	client, photographer, other := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	direct, err := NewDirectChatRoom(client, photographer)
	direct = roomWithMessage(t, direct, err, now.Add(-time.Hour))
	project, err := NewProjectChatRoom(uuid.New(), client, photographer)
	project = roomWithMessage(t, project, err, now)
	unrelated, err := NewDirectChatRoom(client, other)
	unrelated = roomWithMessage(t, unrelated, err, now.Add(-2*time.Hour))

	unified := UnifyChatRooms([]*ChatRoom{direct, unrelated, project})
	require.Len(t, unified, 2)

	first := unified[0]
	assert.Equal(t, PairKey(client, photographer), first.ID)
	assert.Equal(t, project.ID, first.Representative.ID)
	assert.ElementsMatch(t, []uuid.UUID{direct.ID, project.ID}, first.SourceRoomIDs)
	assert.Equal(t, []uuid.UUID{unrelated.ID}, unified[1].SourceRoomIDs)
}

func TestUnifyChatRooms_Idempotent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r1, err := NewProjectChatRoom(uuid.New(), a, b)
	r1 = roomWithMessage(t, r1, err, time.Now())
	r2, err := NewProjectChatRoom(uuid.New(), a, b)
	r2 = roomWithMessage(t, r2, err, time.Now())

	once := UnifyChatRooms([]*ChatRoom{r1, r2})
	twice := UnifyChatRooms([]*ChatRoom{r2, r1, r1})

	require.Len(t, twice, 1)
	assert.Equal(t, once[0].ID, twice[0].ID)
	assert.Equal(t, once[0].SourceRoomIDs, twice[0].SourceRoomIDs)
	assert.Equal(t, once[0].Representative.ID, twice[0].Representative.ID)
}

func TestResolveSendTarget_AlwaysConcreteRoom(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	requestID := uuid.New()
	direct, err := NewDirectChatRoom(a, b)
	require.NoError(t, err)
	project, err := NewProjectChatRoom(requestID, a, b)
	require.NoError(t, err)
	onlyProject, err := NewProjectChatRoom(uuid.New(), a, uuid.New())
	require.NoError(t, err)

	for _, u := range UnifyChatRooms([]*ChatRoom{direct, project, onlyProject}) {
		for _, ctx := range []*uuid.UUID{nil, &requestID} {
			target, err := u.ResolveSendTarget(ctx)
			if err != nil {
				assert.ErrorIs(t, err, apperror.ErrChatRoomNotFound)
				continue
			}
			assert.Contains(t, u.SourceRoomIDs, target)
			assert.NotEqual(t, u.ID, target.String())
		}
	}

	pair, ok := FindUnified(UnifyChatRooms([]*ChatRoom{direct, project}), PairKey(a, b))
	require.True(t, ok)
	target, err := pair.ResolveSendTarget(&requestID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, target)
	target, err = pair.ResolveSendTarget(nil)
	require.NoError(t, err)
	assert.Equal(t, direct.ID, target)
}

func TestChatRoom_DeterministicProjectID(t *testing.T) {
	requestID := uuid.New()
	r1, err := NewProjectChatRoom(requestID, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ProjectChatRoomID(requestID), r1.ID)

	_, err = NewDirectChatRoom(r1.ParticipantA, r1.ParticipantA)
	assert.True(t, apperror.IsValidation(err))
}

func TestAcceptanceIntent_PaymentReference(t *testing.T) {
	i := &AcceptanceIntent{ClientSecret: "pi_3Nabc_secret_xyz"}
	assert.Equal(t, "pi_3Nabc", i.PaymentReference())
	i.ClientSecret = "opaque"
	assert.Equal(t, "opaque", i.PaymentReference())
}
