package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type reviewRow struct {
	ID         uuid.UUID `db:"id"`
	RequestID  uuid.UUID `db:"request_id"`
	ReviewerID uuid.UUID `db:"reviewer_id"`
	RevieweeID uuid.UUID `db:"reviewee_id"`
	Rating     int       `db:"rating"`
	Comment    string    `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r reviewRow) toEntity() *entity.Review {
	return &entity.Review{
		ID:         r.ID,
		RequestID:  r.RequestID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

type ReviewRepositoryAdapter struct {
	db *sqlx.DB
}

func NewReviewRepositoryAdapter(db *sqlx.DB) *ReviewRepositoryAdapter {
	return &ReviewRepositoryAdapter{db: db}
}

func (r *ReviewRepositoryAdapter) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, request_id, reviewer_id, reviewee_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		review.ID, review.RequestID, review.ReviewerID, review.RevieweeID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return execErr(err, apperror.ErrAlreadyReviewed, "не удалось сохранить отзыв")
	}
	return nil
}

func (r *ReviewRepositoryAdapter) ListByReviewee(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `SELECT * FROM reviews WHERE reviewee_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limitOrAll(limit), offset)
}

func (r *ReviewRepositoryAdapter) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Review, error) {
	return r.list(ctx, `SELECT * FROM reviews WHERE request_id = $1 ORDER BY created_at`, requestID)
}

func (r *ReviewRepositoryAdapter) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Review, error) {
	var rows []reviewRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отзывы")
	}
	out := make([]*entity.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

type reportRow struct {
	ID         uuid.UUID `db:"id"`
	RequestID  uuid.UUID `db:"request_id"`
	ReporterID uuid.UUID `db:"reporter_id"`
	Reason     string    `db:"reason"`
	IsDispute  bool      `db:"is_dispute"`
	CreatedAt  time.Time `db:"created_at"`
}

type ReportRepositoryAdapter struct {
	db *sqlx.DB
}

func NewReportRepositoryAdapter(db *sqlx.DB) *ReportRepositoryAdapter {
	return &ReportRepositoryAdapter{db: db}
}

func (r *ReportRepositoryAdapter) Create(ctx context.Context, report *entity.Report) error {
	query := `INSERT INTO reports (id, request_id, reporter_id, reason, is_dispute, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		report.ID, report.RequestID, report.ReporterID, report.Reason, report.IsDispute, report.CreatedAt)
	if err != nil {
		return execErr(err, nil, "не удалось сохранить жалобу")
	}
	return nil
}

func (r *ReportRepositoryAdapter) List(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
	var rows []reportRow
	query := `SELECT * FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, limitOrAll(limit), offset); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить жалобы")
	}
	out := make([]*entity.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Report{
			ID:         row.ID,
			RequestID:  row.RequestID,
			ReporterID: row.ReporterID,
			Reason:     row.Reason,
			IsDispute:  row.IsDispute,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}
