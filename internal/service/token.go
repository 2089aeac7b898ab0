package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

// identityClaims: клеймы access токена провайдера авторизации.
type identityClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager проверяет access токены, выпущенные провайдером авторизации (HS256).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// ParseAccess извлекает личность пользователя из access токена.
func (m *TokenManager) ParseAccess(token string) (entity.Identity, error) {
	claims := &identityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entity.Identity{}, err
	}
	if !parsed.Valid {
		return entity.Identity{}, jwt.ErrTokenInvalidClaims
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return entity.Identity{}, jwt.ErrTokenInvalidClaims
	}

	role := valueobject.Role(claims.Role)
	switch role {
	case valueobject.RoleClient, valueobject.RolePhotographer, valueobject.RoleAdmin:
	default:
		role = valueobject.RoleClient
	}

	return entity.Identity{
		UserID:      userID,
		Email:       claims.Email,
		DisplayName: claims.Name,
		Role:        role,
	}, nil
}

// GenerateAccess выпускает токен с теми же клеймами. Используется в тестах и локальной разработке.
func (m *TokenManager) GenerateAccess(identity entity.Identity) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email: identity.Email,
		Name:  identity.DisplayName,
		Role:  string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
