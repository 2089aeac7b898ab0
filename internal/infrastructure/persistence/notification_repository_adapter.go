package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type notificationRow struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	Type      string     `db:"type"`
	Link      string     `db:"link"`
	RelatedID *uuid.UUID `db:"related_id"`
	IsRead    bool       `db:"is_read"`
	CreatedAt time.Time  `db:"created_at"`
}

type NotificationRepositoryAdapter struct {
	db *sqlx.DB
}

func NewNotificationRepositoryAdapter(db *sqlx.DB) *NotificationRepositoryAdapter {
	return &NotificationRepositoryAdapter{db: db}
}

func (r *NotificationRepositoryAdapter) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, link, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Message, string(n.Type), n.Link, n.RelatedID, n.IsRead, n.CreatedAt)
	if err != nil {
		return execErr(err, nil, "не удалось сохранить уведомление")
	}
	return nil
}

// List возвращает уведомления пользователя, новые сверху.
func (r *NotificationRepositoryAdapter) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	query := `SELECT * FROM notifications WHERE user_id = $1`
	args := []interface{}{userID}
	argIndex := 2

	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, offset)
	}

	var rows []notificationRow
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомления")
	}
	out := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Title:     row.Title,
			Message:   row.Message,
			Type:      entity.NotificationType(row.Type),
			Link:      row.Link,
			RelatedID: row.RelatedID,
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *NotificationRepositoryAdapter) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, userID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать уведомления")
	}
	return count, nil
}

func (r *NotificationRepositoryAdapter) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return execErr(err, nil, "не удалось отметить уведомление")
	}
	return requireAffected(res, apperror.ErrNotificationNotFound)
}

func (r *NotificationRepositoryAdapter) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return execErr(err, nil, "не удалось отметить уведомления")
	}
	return nil
}
