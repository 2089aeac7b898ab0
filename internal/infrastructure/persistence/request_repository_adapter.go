package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

const requestColumns = `id, owner_id, title, description, budget, status, requested_photographer_id,
	hired_photographer_id, accepted_bid_id, accepted_bid_amount, project_chat_room_id, unread_bid_count,
	dispute_resolution, owner_has_reviewed, photographer_has_reviewed, delivered_files, created_at, updated_at`

type requestRow struct {
	ID                      uuid.UUID      `db:"id"`
	OwnerID                 uuid.UUID      `db:"owner_id"`
	Title                   string         `db:"title"`
	Description             string         `db:"description"`
	Budget                  int64          `db:"budget"`
	Status                  string         `db:"status"`
	RequestedPhotographerID *uuid.UUID     `db:"requested_photographer_id"`
	HiredPhotographerID     *uuid.UUID     `db:"hired_photographer_id"`
	AcceptedBidID           *uuid.UUID     `db:"accepted_bid_id"`
	AcceptedBidAmount       sql.NullInt64  `db:"accepted_bid_amount"`
	ProjectChatRoomID       *uuid.UUID     `db:"project_chat_room_id"`
	UnreadBidCount          int            `db:"unread_bid_count"`
	DisputeResolution       sql.NullString `db:"dispute_resolution"`
	OwnerHasReviewed        bool           `db:"owner_has_reviewed"`
	PhotographerHasReviewed bool           `db:"photographer_has_reviewed"`
	DeliveredFiles          pq.StringArray `db:"delivered_files"`
	CreatedAt               time.Time      `db:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at"`
}

func (r requestRow) toEntity() *entity.Request {
	req := &entity.Request{
		ID:                      r.ID,
		OwnerID:                 r.OwnerID,
		Title:                   r.Title,
		Description:             r.Description,
		Budget:                  valueobject.Money(r.Budget),
		Status:                  valueobject.RequestStatus(r.Status),
		RequestedPhotographerID: r.RequestedPhotographerID,
		HiredPhotographerID:     r.HiredPhotographerID,
		AcceptedBidID:           r.AcceptedBidID,
		ProjectChatRoomID:       r.ProjectChatRoomID,
		UnreadBidCount:          r.UnreadBidCount,
		OwnerHasReviewed:        r.OwnerHasReviewed,
		PhotographerHasReviewed: r.PhotographerHasReviewed,
		DeliveredFiles:          []string(r.DeliveredFiles),
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
	if r.AcceptedBidAmount.Valid {
		amount := valueobject.Money(r.AcceptedBidAmount.Int64)
		req.AcceptedBidAmount = &amount
	}
	if r.DisputeResolution.Valid {
		resolution := valueobject.DisputeResolution(r.DisputeResolution.String)
		req.DisputeResolution = &resolution
	}
	return req
}

func nullMoney(m *valueobject.Money) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: m.Cents(), Valid: true}
}

func nullResolution(r *valueobject.DisputeResolution) sql.NullString {
	if r == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*r), Valid: true}
}

type RequestRepositoryAdapter struct {
	db *sqlx.DB
}

func NewRequestRepositoryAdapter(db *sqlx.DB) *RequestRepositoryAdapter {
	return &RequestRepositoryAdapter{db: db}
}

func (r *RequestRepositoryAdapter) Create(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO requests (id, owner_id, title, description, budget, status, requested_photographer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		req.ID,
		req.OwnerID,
		req.Title,
		req.Description,
		req.Budget.Cents(),
		string(req.Status),
		req.RequestedPhotographerID,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return execErr(err, nil, "не удалось создать заявку")
	}
	return nil
}

func (r *RequestRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	var row requestRow
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, getErr(err, apperror.ErrRequestNotFound, "не удалось получить заявку")
	}
	return row.toEntity(), nil
}

// UpdateIfStatus не трогает файлы, счётчик ставок и разовые флаги отзывов вне approve:
// у них свои атомарные методы.
func (r *RequestRepositoryAdapter) UpdateIfStatus(ctx context.Context, req *entity.Request, expected valueobject.RequestStatus) error {
	query := `
		UPDATE requests
		SET status = $3, hired_photographer_id = $4, accepted_bid_id = $5, accepted_bid_amount = $6,
		    project_chat_room_id = $7, dispute_resolution = $8, owner_has_reviewed = $9,
		    photographer_has_reviewed = $10, updated_at = $11
		WHERE id = $1 AND status = $2
	`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		req.ID,
		string(expected),
		string(req.Status),
		req.HiredPhotographerID,
		req.AcceptedBidID,
		nullMoney(req.AcceptedBidAmount),
		req.ProjectChatRoomID,
		nullResolution(req.DisputeResolution),
		req.OwnerHasReviewed,
		req.PhotographerHasReviewed,
		req.UpdatedAt,
	)
	if err != nil {
		return execErr(err, nil, "не удалось обновить заявку")
	}
	return requireAffected(res, apperror.ErrStateChanged)
}

func (r *RequestRepositoryAdapter) AppendDeliveredFiles(ctx context.Context, id uuid.UUID, files []string) error {
	query := `
		UPDATE requests
		SET delivered_files = delivered_files || $2::text[], updated_at = NOW()
		WHERE id = $1 AND status IN ('in_progress', 'delivered')
	`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id, pq.StringArray(files))
	if err != nil {
		return execErr(err, nil, "не удалось сохранить файлы работы")
	}
	return requireAffected(res, apperror.ErrStateChanged)
}

func (r *RequestRepositoryAdapter) MarkReviewed(ctx context.Context, id uuid.UUID, ownerSide bool) error {
	query := `UPDATE requests SET photographer_has_reviewed = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'completed' AND photographer_has_reviewed = FALSE`
	if ownerSide {
		query = `UPDATE requests SET owner_has_reviewed = TRUE, updated_at = NOW()
			WHERE id = $1 AND status = 'completed' AND owner_has_reviewed = FALSE`
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return execErr(err, nil, "не удалось отметить отзыв")
	}
	return requireAffected(res, apperror.ErrAlreadyReviewed)
}

func (r *RequestRepositoryAdapter) IncrementUnreadBids(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE requests SET unread_bid_count = unread_bid_count + 1 WHERE id = $1`
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, id); err != nil {
		return execErr(err, nil, "не удалось обновить счётчик ставок")
	}
	return nil
}

func (r *RequestRepositoryAdapter) ResetUnreadBids(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE requests SET unread_bid_count = 0 WHERE id = $1 AND unread_bid_count <> 0`
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, id); err != nil {
		return execErr(err, nil, "не удалось сбросить счётчик ставок")
	}
	return nil
}

func (r *RequestRepositoryAdapter) ListOpen(ctx context.Context, limit, offset int) ([]*entity.Request, int, error) {
	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, `SELECT COUNT(*) FROM requests WHERE status = 'open'`); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать заявки")
	}
	requests, err := r.ListByStatus(ctx, valueobject.RequestStatusOpen, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *RequestRepositoryAdapter) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
		WHERE owner_id = $1 OR hired_photographer_id = $1 OR requested_photographer_id = $1
		ORDER BY created_at DESC`
	return r.selectRequests(ctx, query, userID)
}

func (r *RequestRepositoryAdapter) ListByStatus(ctx context.Context, status valueobject.RequestStatus, limit, offset int) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.selectRequests(ctx, query, string(status), limitOrAll(limit), offset)
}

func (r *RequestRepositoryAdapter) selectRequests(ctx context.Context, query string, args ...interface{}) ([]*entity.Request, error) {
	var rows []requestRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявки")
	}
	out := make([]*entity.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// limitOrAll: LIMIT NULL в PostgreSQL означает "без ограничения".
func limitOrAll(limit int) sql.NullInt64 {
	if limit <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(limit), Valid: true}
}
