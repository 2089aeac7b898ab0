package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// ProfileCounter: счётчик-бейдж на профиле. Значения совпадают с именами колонок.
type ProfileCounter string

const (
	CounterNewGigs        ProfileCounter = "new_gig_count"
	CounterPendingReviews ProfileCounter = "pending_review_count"
)

func NewProfileCounter(name string) (ProfileCounter, error) {
	switch ProfileCounter(name) {
	case CounterNewGigs, CounterPendingReviews:
		return ProfileCounter(name), nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "неизвестный счётчик")
}

type Profile struct {
	UserID             uuid.UUID
	Email              string
	DisplayName        string
	Role               valueobject.Role
	IsAvailable        bool
	Balance            valueobject.Money
	NewGigCount        int
	PendingReviewCount int
	PayoutAccountID    *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Identity: данные текущей сессии от провайдера авторизации.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Role        valueobject.Role
}

func NewProfileFromIdentity(id Identity) *Profile {
	now := time.Now()
	role := id.Role
	if role == "" {
		role = valueobject.RoleClient
	}
	return &Profile{
		UserID:      id.UserID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        role,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
