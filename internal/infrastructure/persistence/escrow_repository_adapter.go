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

type escrowRow struct {
	ID         uuid.UUID `db:"id"`
	RequestID  uuid.UUID `db:"request_id"`
	PayeeID    uuid.UUID `db:"payee_id"`
	Amount     int64     `db:"amount"`
	Status     string    `db:"status"`
	PaymentRef string    `db:"payment_ref"`
	PaidAt     time.Time `db:"paid_at"`
}

type EscrowRepositoryAdapter struct {
	db *sqlx.DB
}

func NewEscrowRepositoryAdapter(db *sqlx.DB) *EscrowRepositoryAdapter {
	return &EscrowRepositoryAdapter{db: db}
}

func (r *EscrowRepositoryAdapter) Record(ctx context.Context, p *entity.EscrowPayment) error {
	query := `
		INSERT INTO escrow_payments (id, request_id, payee_id, amount, status, payment_ref, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		p.ID, p.RequestID, p.PayeeID, p.Amount.Cents(), string(p.Status), p.PaymentRef, p.PaidAt)
	if err != nil {
		return execErr(err, nil, "не удалось записать движение средств")
	}
	return nil
}

func (r *EscrowRepositoryAdapter) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.EscrowPayment, error) {
	return r.list(ctx, `SELECT * FROM escrow_payments WHERE request_id = $1 ORDER BY paid_at`, requestID)
}

func (r *EscrowRepositoryAdapter) ListByPayee(ctx context.Context, payeeID uuid.UUID) ([]*entity.EscrowPayment, error) {
	return r.list(ctx, `SELECT * FROM escrow_payments WHERE payee_id = $1 ORDER BY paid_at DESC`, payeeID)
}

func (r *EscrowRepositoryAdapter) list(ctx context.Context, query string, id uuid.UUID) ([]*entity.EscrowPayment, error) {
	var rows []escrowRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, id); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить движения средств")
	}
	out := make([]*entity.EscrowPayment, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.EscrowPayment{
			ID:         row.ID,
			RequestID:  row.RequestID,
			PayeeID:    row.PayeeID,
			Amount:     valueobject.Money(row.Amount),
			Status:     valueobject.EscrowStatus(row.Status),
			PaymentRef: row.PaymentRef,
			PaidAt:     row.PaidAt,
		})
	}
	return out, nil
}
