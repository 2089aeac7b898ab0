package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

const profileColumns = `user_id, email, display_name, role, is_available, balance, new_gig_count,
	pending_review_count, payout_account_id, created_at, updated_at`

type profileRow struct {
	UserID             uuid.UUID      `db:"user_id"`
	Email              string         `db:"email"`
	DisplayName        string         `db:"display_name"`
	Role               string         `db:"role"`
	IsAvailable        bool           `db:"is_available"`
	Balance            int64          `db:"balance"`
	NewGigCount        int            `db:"new_gig_count"`
	PendingReviewCount int            `db:"pending_review_count"`
	PayoutAccountID    sql.NullString `db:"payout_account_id"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r profileRow) toEntity() *entity.Profile {
	p := &entity.Profile{
		UserID:             r.UserID,
		Email:              r.Email,
		DisplayName:        r.DisplayName,
		Role:               valueobject.Role(r.Role),
		IsAvailable:        r.IsAvailable,
		Balance:            valueobject.Money(r.Balance),
		NewGigCount:        r.NewGigCount,
		PendingReviewCount: r.PendingReviewCount,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.PayoutAccountID.Valid {
		account := r.PayoutAccountID.String
		p.PayoutAccountID = &account
	}
	return p
}

type ProfileRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProfileRepositoryAdapter(db *sqlx.DB) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{db: db}
}

// Ensure создаёт профиль при первом входе. Роль и баланс существующего профиля не меняются.
func (r *ProfileRepositoryAdapter) Ensure(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, email, display_name, role, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET email = EXCLUDED.email,
		    display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), profiles.display_name)
		RETURNING ` + profileColumns
	var row profileRow
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		p.UserID,
		p.Email,
		p.DisplayName,
		string(p.Role),
		p.IsAvailable,
		p.CreatedAt,
		p.UpdatedAt,
	).StructScan(&row)
	if err != nil {
		return nil, execErr(err, nil, "не удалось сохранить профиль")
	}
	return row.toEntity(), nil
}

func (r *ProfileRepositoryAdapter) FindByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, userID); err != nil {
		return nil, getErr(err, apperror.ErrProfileNotFound, "не удалось получить профиль")
	}
	return row.toEntity(), nil
}

func (r *ProfileRepositoryAdapter) UpdateDetails(ctx context.Context, userID uuid.UUID, displayName string, isAvailable bool) error {
	query := `UPDATE profiles SET display_name = $2, is_available = $3, updated_at = NOW() WHERE user_id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, userID, displayName, isAvailable)
	if err != nil {
		return execErr(err, nil, "не удалось обновить профиль")
	}
	return requireAffected(res, apperror.ErrProfileNotFound)
}

// AdjustBalance: зачисление создаёт профиль получателя при необходимости, списание требует
// достаточного остатка.
func (r *ProfileRepositoryAdapter) AdjustBalance(ctx context.Context, userID uuid.UUID, delta valueobject.Money) error {
	db := conn(ctx, r.db)
	if delta >= 0 {
		query := `
			INSERT INTO profiles (user_id, balance) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET balance = profiles.balance + EXCLUDED.balance, updated_at = NOW()
		`
		if _, err := db.ExecContext(ctx, query, userID, delta.Cents()); err != nil {
			return execErr(err, nil, "не удалось зачислить средства")
		}
		return nil
	}

	query := `UPDATE profiles SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1 AND balance + $2 >= 0`
	res, err := db.ExecContext(ctx, query, userID, delta.Cents())
	if err != nil {
		return execErr(err, nil, "не удалось списать средства")
	}
	return requireAffected(res, apperror.ErrInsufficientFunds)
}

// counterColumn защищает от подстановки произвольного имени колонки.
func counterColumn(counter entity.ProfileCounter) (string, error) {
	switch counter {
	case entity.CounterNewGigs, entity.CounterPendingReviews:
		return string(counter), nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "неизвестный счётчик")
}

func (r *ProfileRepositoryAdapter) IncrementCounter(ctx context.Context, userID uuid.UUID, counter entity.ProfileCounter, delta int) error {
	column, err := counterColumn(counter)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO profiles (user_id, ` + column + `) VALUES ($1, GREATEST($2, 0))
		ON CONFLICT (user_id) DO UPDATE SET ` + column + ` = GREATEST(profiles.` + column + ` + $2, 0), updated_at = NOW()
	`
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, userID, delta); err != nil {
		return execErr(err, nil, "не удалось обновить счётчик")
	}
	return nil
}

func (r *ProfileRepositoryAdapter) ResetCounter(ctx context.Context, userID uuid.UUID, counter entity.ProfileCounter) error {
	column, err := counterColumn(counter)
	if err != nil {
		return err
	}
	query := `UPDATE profiles SET ` + column + ` = 0, updated_at = NOW() WHERE user_id = $1`
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, userID); err != nil {
		return execErr(err, nil, "не удалось сбросить счётчик")
	}
	return nil
}

func (r *ProfileRepositoryAdapter) SetPayoutAccount(ctx context.Context, userID uuid.UUID, accountID string) error {
	query := `
		INSERT INTO profiles (user_id, payout_account_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET payout_account_id = EXCLUDED.payout_account_id, updated_at = NOW()
	`
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, userID, accountID); err != nil {
		return execErr(err, nil, "не удалось сохранить счёт для выплат")
	}
	return nil
}
