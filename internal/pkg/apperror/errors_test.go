package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeNotFound:          http.StatusNotFound,
		ErrCodeValidation:        http.StatusBadRequest,
		ErrCodeConflict:          http.StatusConflict,
		ErrCodeNoLongerAvailable: http.StatusConflict,
		ErrCodePaymentFailed:     http.StatusBadGateway,
		ErrCodeReconciliationGap: http.StatusInternalServerError,
		ErrCodeDatabaseError:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, New(code, "x").HTTPStatus, string(code))
	}
}

func TestIsHelpers_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("confirm: %w", ErrRequestAlreadyAccepted)

	assert.True(t, IsRaceLost(err))
	assert.True(t, errors.Is(err, ErrRequestAlreadyAccepted))
	assert.False(t, errors.Is(err, ErrBidNoLongerActive))
	assert.False(t, IsReconciliationGap(err))
}

func TestReconciliationGap_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := ReconciliationGap(cause)

	assert.True(t, IsReconciliationGap(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCodeOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}
