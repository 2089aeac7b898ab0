package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

const intentColumns = `id, kind, request_id, bid_id, owner_id, photographer_id, title, description,
	amount, fee, total, client_secret, status, expires_at, created_at, updated_at`

type intentRow struct {
	ID             uuid.UUID  `db:"id"`
	Kind           string     `db:"kind"`
	RequestID      uuid.UUID  `db:"request_id"`
	BidID          *uuid.UUID `db:"bid_id"`
	OwnerID        uuid.UUID  `db:"owner_id"`
	PhotographerID uuid.UUID  `db:"photographer_id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	Amount         int64      `db:"amount"`
	Fee            int64      `db:"fee"`
	Total          int64      `db:"total"`
	ClientSecret   string     `db:"client_secret"`
	Status         string     `db:"status"`
	ExpiresAt      time.Time  `db:"expires_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r intentRow) toEntity() *entity.AcceptanceIntent {
	return &entity.AcceptanceIntent{
		ID:             r.ID,
		Kind:           valueobject.IntentKind(r.Kind),
		RequestID:      r.RequestID,
		BidID:          r.BidID,
		OwnerID:        r.OwnerID,
		PhotographerID: r.PhotographerID,
		Title:          r.Title,
		Description:    r.Description,
		Breakdown: valueobject.FeeBreakdown{
			Amount: valueobject.Money(r.Amount),
			Fee:    valueobject.Money(r.Fee),
			Total:  valueobject.Money(r.Total),
		},
		ClientSecret: r.ClientSecret,
		Status:       valueobject.IntentStatus(r.Status),
		ExpiresAt:    r.ExpiresAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type AcceptanceRepositoryAdapter struct {
	db *sqlx.DB
}

func NewAcceptanceRepositoryAdapter(db *sqlx.DB) *AcceptanceRepositoryAdapter {
	return &AcceptanceRepositoryAdapter{db: db}
}

func (r *AcceptanceRepositoryAdapter) Create(ctx context.Context, i *entity.AcceptanceIntent) error {
	query := `
		INSERT INTO acceptance_intents (` + intentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		i.ID,
		string(i.Kind),
		i.RequestID,
		i.BidID,
		i.OwnerID,
		i.PhotographerID,
		i.Title,
		i.Description,
		i.Breakdown.Amount.Cents(),
		i.Breakdown.Fee.Cents(),
		i.Breakdown.Total.Cents(),
		i.ClientSecret,
		string(i.Status),
		i.ExpiresAt,
		i.CreatedAt,
		i.UpdatedAt,
	)
	if err != nil {
		return execErr(err, apperror.ErrAcceptanceInProgress, "не удалось создать платёжную сессию")
	}
	return nil
}

func (r *AcceptanceRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.AcceptanceIntent, error) {
	var row intentRow
	query := `SELECT ` + intentColumns + ` FROM acceptance_intents WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, getErr(err, apperror.ErrIntentNotFound, "не удалось получить платёжную сессию")
	}
	return row.toEntity(), nil
}

func (r *AcceptanceRepositoryAdapter) FindPendingByRequest(ctx context.Context, requestID uuid.UUID) (*entity.AcceptanceIntent, error) {
	var rows []intentRow
	query := `SELECT ` + intentColumns + ` FROM acceptance_intents WHERE request_id = $1 AND status = 'pending' LIMIT 1`
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, requestID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить платёжную сессию")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toEntity(), nil
}

func (r *AcceptanceRepositoryAdapter) SetClientSecret(ctx context.Context, id uuid.UUID, clientSecret string) error {
	query := `UPDATE acceptance_intents SET client_secret = $2, updated_at = NOW() WHERE id = $1`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id, clientSecret)
	if err != nil {
		return execErr(err, nil, "не удалось сохранить платёжную сессию")
	}
	return requireAffected(res, apperror.ErrIntentNotFound)
}

func (r *AcceptanceRepositoryAdapter) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.IntentStatus) error {
	query := `UPDATE acceptance_intents SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id, string(from), string(to))
	if err != nil {
		return execErr(err, nil, "не удалось обновить платёжную сессию")
	}
	return requireAffected(res, apperror.ErrStateChanged)
}
