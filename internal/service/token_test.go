package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	identity := entity.Identity{UserID: uuid.New(), Email: "ph@example.com", DisplayName: "Ира", Role: valueobject.RolePhotographer}

	token, err := m.GenerateAccess(identity)
	require.NoError(t, err)
	got, err := m.ParseAccess(token)

	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	identity := entity.Identity{UserID: uuid.New()}

	foreign, err := NewTokenManager("other", time.Hour).GenerateAccess(identity)
	require.NoError(t, err)
	_, err = m.ParseAccess(foreign)
	assert.Error(t, err, "чужая подпись")

	expired, err := NewTokenManager("secret", -time.Minute).GenerateAccess(identity)
	require.NoError(t, err)
	_, err = m.ParseAccess(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAccess(noSub)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseAccess(none)
	assert.Error(t, err)
}

func TestTokenManager_UnknownRoleFallsBackToClient(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := m.ParseAccess(token)

	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleClient, got.Role)
}
