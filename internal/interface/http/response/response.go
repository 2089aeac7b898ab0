package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewPagination(total, limit, offset int) Pagination {
	return Pagination{Total: total, Limit: limit, Offset: offset, HasMore: offset+limit < total}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Paginated(c *gin.Context, data interface{}, total, limit, offset int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: NewPagination(total, limit, offset),
	})
}

// Error пишет конверт ошибки. 5xx логируются с причиной, клиент видит только сообщение.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		logError(c, err, apperror.ErrCodeInternal)
		fail(c, http.StatusInternalServerError, apperror.ErrCodeInternal, "внутренняя ошибка сервера")
		return
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logError(c, err, appErr.Code)
	}
	fail(c, appErr.HTTPStatus, appErr.Code, appErr.Message)
}

func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, apperror.ErrCodeBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	fail(c, http.StatusForbidden, apperror.ErrCodeForbidden, message)
}

// TooManyRequests прерывает цепочку обработчиков.
func TooManyRequests(c *gin.Context) {
	fail(c, http.StatusTooManyRequests, apperror.ErrCodeRateLimited, "слишком много запросов, попробуйте позже")
	c.Abort()
}

func fail(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: string(code), Message: message},
	})
}

func logError(c *gin.Context, err error, code apperror.ErrorCode) {
	logger.Log.WithFields(logrus.Fields{
		"code":   code,
		"path":   c.FullPath(),
		"method": c.Request.Method,
	}).WithError(err).Error("request failed")
}
