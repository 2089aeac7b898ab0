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

const payoutColumns = `id, user_id, amount, status, transfer_id, requested_at, completed_at`

type payoutRow struct {
	ID          uuid.UUID      `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	Amount      int64          `db:"amount"`
	Status      string         `db:"status"`
	TransferID  sql.NullString `db:"transfer_id"`
	RequestedAt time.Time      `db:"requested_at"`
	CompletedAt sql.NullTime   `db:"completed_at"`
}

func (r payoutRow) toEntity() *entity.PayoutRequest {
	p := &entity.PayoutRequest{
		ID:          r.ID,
		UserID:      r.UserID,
		Amount:      valueobject.Money(r.Amount),
		Status:      valueobject.PayoutStatus(r.Status),
		RequestedAt: r.RequestedAt,
	}
	if r.TransferID.Valid {
		id := r.TransferID.String
		p.TransferID = &id
	}
	if r.CompletedAt.Valid {
		at := r.CompletedAt.Time
		p.CompletedAt = &at
	}
	return p
}

type PayoutRepositoryAdapter struct {
	db *sqlx.DB
}

func NewPayoutRepositoryAdapter(db *sqlx.DB) *PayoutRepositoryAdapter {
	return &PayoutRepositoryAdapter{db: db}
}

func (r *PayoutRepositoryAdapter) Create(ctx context.Context, p *entity.PayoutRequest) error {
	query := `INSERT INTO payout_requests (id, user_id, amount, status, requested_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, p.ID, p.UserID, p.Amount.Cents(), string(p.Status), p.RequestedAt)
	if err != nil {
		return execErr(err, apperror.ErrPendingPayoutExists, "не удалось создать заявку на выплату")
	}
	return nil
}

func (r *PayoutRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutRequest, error) {
	var row payoutRow
	query := `SELECT ` + payoutColumns + ` FROM payout_requests WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, getErr(err, apperror.ErrPayoutNotFound, "не удалось получить заявку на выплату")
	}
	return row.toEntity(), nil
}

func (r *PayoutRepositoryAdapter) FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.PayoutRequest, error) {
	payouts, err := r.list(ctx, `SELECT `+payoutColumns+` FROM payout_requests WHERE user_id = $1 AND status = 'pending' LIMIT 1`, userID)
	if err != nil || len(payouts) == 0 {
		return nil, err
	}
	return payouts[0], nil
}

func (r *PayoutRepositoryAdapter) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PayoutRequest, error) {
	return r.list(ctx, `SELECT `+payoutColumns+` FROM payout_requests WHERE user_id = $1 ORDER BY requested_at DESC`, userID)
}

func (r *PayoutRepositoryAdapter) ListByStatus(ctx context.Context, status valueobject.PayoutStatus, limit, offset int) ([]*entity.PayoutRequest, error) {
	query := `SELECT ` + payoutColumns + ` FROM payout_requests WHERE status = $1 ORDER BY requested_at LIMIT $2 OFFSET $3`
	return r.list(ctx, query, string(status), limitOrAll(limit), offset)
}

func (r *PayoutRepositoryAdapter) list(ctx context.Context, query string, args ...interface{}) ([]*entity.PayoutRequest, error) {
	var rows []payoutRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить выплаты")
	}
	out := make([]*entity.PayoutRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *PayoutRepositoryAdapter) CompleteIfPending(ctx context.Context, p *entity.PayoutRequest) error {
	query := `
		UPDATE payout_requests SET status = $2, transfer_id = $3, completed_at = $4
		WHERE id = $1 AND status = 'pending'
	`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, p.ID, string(p.Status), p.TransferID, p.CompletedAt)
	if err != nil {
		return execErr(err, nil, "не удалось завершить выплату")
	}
	return requireAffected(res, apperror.NoLongerAvailable("выплата уже обработана"))
}

func (r *PayoutRepositoryAdapter) SetTransferID(ctx context.Context, id uuid.UUID, transferID string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE payout_requests SET transfer_id = $2 WHERE id = $1`, id, transferID)
	if err != nil {
		return execErr(err, nil, "не удалось сохранить перевод")
	}
	return requireAffected(res, apperror.ErrPayoutNotFound)
}
