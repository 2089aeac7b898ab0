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

const bidColumns = `id, request_id, bidder_id, amount, note, status, created_at, updated_at`

type bidRow struct {
	ID        uuid.UUID `db:"id"`
	RequestID uuid.UUID `db:"request_id"`
	BidderID  uuid.UUID `db:"bidder_id"`
	Amount    int64     `db:"amount"`
	Note      string    `db:"note"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r bidRow) toEntity() *entity.Bid {
	return &entity.Bid{
		ID:        r.ID,
		RequestID: r.RequestID,
		BidderID:  r.BidderID,
		Amount:    valueobject.Money(r.Amount),
		Note:      r.Note,
		Status:    valueobject.BidStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type BidRepositoryAdapter struct {
	db *sqlx.DB
}

func NewBidRepositoryAdapter(db *sqlx.DB) *BidRepositoryAdapter {
	return &BidRepositoryAdapter{db: db}
}

func (r *BidRepositoryAdapter) Create(ctx context.Context, bid *entity.Bid) error {
	query := `
		INSERT INTO bids (id, request_id, bidder_id, amount, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		bid.ID,
		bid.RequestID,
		bid.BidderID,
		bid.Amount.Cents(),
		bid.Note,
		string(bid.Status),
		bid.CreatedAt,
		bid.UpdatedAt,
	)
	if err != nil {
		return execErr(err, apperror.ErrActiveBidExists, "не удалось создать ставку")
	}
	return nil
}

func (r *BidRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	return r.get(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, id)
}

func (r *BidRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	return r.get(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = $1 FOR UPDATE`, id)
}

func (r *BidRepositoryAdapter) get(ctx context.Context, query string, id uuid.UUID) (*entity.Bid, error) {
	var row bidRow
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, getErr(err, apperror.ErrBidNotFound, "не удалось получить ставку")
	}
	return row.toEntity(), nil
}

func (r *BidRepositoryAdapter) FindActive(ctx context.Context, requestID, bidderID uuid.UUID) (*entity.Bid, error) {
	var rows []bidRow
	query := `SELECT ` + bidColumns + ` FROM bids WHERE request_id = $1 AND bidder_id = $2 AND status = 'active' LIMIT 1`
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, requestID, bidderID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить ставку")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toEntity(), nil
}

func (r *BidRepositoryAdapter) CancelIfActive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE bids SET status = 'cancelled', updated_at = NOW() WHERE id = $1 AND status = 'active'`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return execErr(err, nil, "не удалось отменить ставку")
	}
	return requireAffected(res, apperror.ErrBidNotActive)
}

func (r *BidRepositoryAdapter) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Bid, error) {
	return r.list(ctx, `SELECT `+bidColumns+` FROM bids WHERE request_id = $1 ORDER BY created_at`, requestID)
}

func (r *BidRepositoryAdapter) ListByBidder(ctx context.Context, bidderID uuid.UUID) ([]*entity.Bid, error) {
	return r.list(ctx, `SELECT `+bidColumns+` FROM bids WHERE bidder_id = $1 ORDER BY created_at DESC`, bidderID)
}

func (r *BidRepositoryAdapter) list(ctx context.Context, query string, id uuid.UUID) ([]*entity.Bid, error) {
	var rows []bidRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, id); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить ставки")
	}
	out := make([]*entity.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
