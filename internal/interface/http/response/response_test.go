package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Discard()
}

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestError_AppErrorKeepsCodeAndStatus(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, apperror.NoLongerAvailable("заявка уже занята"))
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NO_LONGER_AVAILABLE", body.Error.Code)
	assert.Equal(t, "заявка уже занята", body.Error.Message)
}

func TestError_UnknownErrorIsHidden(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "pq")
}

func TestTooManyRequests_Aborts(t *testing.T) {
	var aborted bool
	w := record(func(c *gin.Context) {
		TooManyRequests(c)
		aborted = c.IsAborted()
	})

	assert.True(t, aborted)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, w).Error.Code)
}

func TestPaginated_HasMore(t *testing.T) {
	w := record(func(c *gin.Context) {
		Paginated(c, []int{1, 2}, 5, 2, 2)
	})

	var body PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, NewPagination(5, 2, 2), body.Pagination)
	assert.True(t, body.Pagination.HasMore)
	assert.False(t, NewPagination(4, 2, 2).HasMore)
}
