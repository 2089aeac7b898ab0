package persistence

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// execErr оборачивает ошибку записи; нарушение уникальности превращается в conflict.
func execErr(err error, conflict *apperror.AppError, message string) error {
	if conflict != nil && isUniqueViolation(err) {
		return conflict
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

// getErr отображает sql.ErrNoRows в notFound.
func getErr(err error, notFound *apperror.AppError, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

// requireAffected превращает нулевое число затронутых строк в miss.
func requireAffected(res sql.Result, miss *apperror.AppError) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат записи")
	}
	if rows == 0 {
		return miss
	}
	return nil
}
