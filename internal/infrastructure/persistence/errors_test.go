package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

func TestExecErr_UniqueViolationBecomesConflict(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation})

	got := execErr(err, apperror.ErrActiveBidExists, "не удалось создать ставку")
	assert.ErrorIs(t, got, apperror.ErrActiveBidExists)
}

func TestExecErr_OtherErrorsAreDatabaseErrors(t *testing.T) {
	got := execErr(errors.New("connection reset"), apperror.ErrActiveBidExists, "не удалось создать ставку")
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(got))

	got = execErr(&pq.Error{Code: pqUniqueViolation}, nil, "не удалось создать ставку")
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(got))
}

func TestGetErr(t *testing.T) {
	assert.ErrorIs(t, getErr(sql.ErrNoRows, apperror.ErrBidNotFound, "x"), apperror.ErrBidNotFound)
	assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(getErr(errors.New("boom"), apperror.ErrBidNotFound, "x")))
}

func TestRequireAffected(t *testing.T) {
	assert.NoError(t, requireAffected(fakeResult{rows: 1}, apperror.ErrStateChanged))
	assert.True(t, apperror.IsRaceLost(requireAffected(fakeResult{rows: 0}, apperror.ErrStateChanged)))
}
