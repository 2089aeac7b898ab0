package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	ErrCodeNoLongerAvailable ErrorCode = "NO_LONGER_AVAILABLE"
	ErrCodePaymentFailed     ErrorCode = "PAYMENT_FAILED"
	ErrCodeReconciliationGap ErrorCode = "RECONCILIATION_GAP"
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал с обёрнутыми пресетами.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeNoLongerAvailable, ErrCodeInsufficientFunds:
		return http.StatusConflict
	case ErrCodePaymentFailed:
		return http.StatusBadGateway
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или пустую строку для "чужих" ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

// IsRaceLost сообщает, что условная запись не прошла из-за изменённого состояния.
func IsRaceLost(err error) bool {
	return CodeOf(err) == ErrCodeNoLongerAvailable
}

func IsReconciliationGap(err error) bool {
	return CodeOf(err) == ErrCodeReconciliationGap
}

// NoLongerAvailable строит ошибку проигранной гонки с пояснением для клиента.
func NoLongerAvailable(message string) *AppError {
	return New(ErrCodeNoLongerAvailable, message)
}

// ReconciliationGap помечает ситуацию, когда платёж прошёл, а локальная запись нет.
func ReconciliationGap(err error) *AppError {
	return Wrap(err, ErrCodeReconciliationGap, "платёж проведён, но проект не создан; требуется ручная сверка")
}

var (
	ErrRequestNotFound      = New(ErrCodeNotFound, "заявка не найдена")
	ErrBidNotFound          = New(ErrCodeNotFound, "ставка не найдена")
	ErrChatRoomNotFound     = New(ErrCodeNotFound, "чат не найден")
	ErrProfileNotFound      = New(ErrCodeNotFound, "профиль не найден")
	ErrPayoutNotFound       = New(ErrCodeNotFound, "заявка на выплату не найдена")
	ErrIntentNotFound       = New(ErrCodeNotFound, "платёжная сессия не найдена")
	ErrNotificationNotFound = New(ErrCodeNotFound, "уведомление не найдено")
	ErrUnauthorized         = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden            = New(ErrCodeForbidden, "недостаточно прав")

	ErrRequestAlreadyAccepted = NoLongerAvailable("заявка уже принята другим исполнителем")
	ErrBidNoLongerActive      = NoLongerAvailable("ставка больше не активна")
	ErrStateChanged           = NoLongerAvailable("состояние заявки изменилось, обновите страницу")

	ErrBidNotActive          = New(ErrCodeValidation, "ставка не активна")
	ErrActiveBidExists       = New(ErrCodeConflict, "у вас уже есть активная ставка на эту заявку")
	ErrPendingPayoutExists   = New(ErrCodeConflict, "заявка на выплату уже ожидает обработки")
	ErrAlreadyReviewed       = New(ErrCodeConflict, "отзыв уже оставлен")
	ErrAcceptanceInProgress  = NoLongerAvailable("по заявке уже идёт оплата другой ставки")
	ErrInsufficientFunds     = New(ErrCodeInsufficientFunds, "недостаточно средств на балансе")
	ErrPayoutAccountMissing  = New(ErrCodeValidation, "не подключён счёт для выплат")
	ErrPaymentDataIncomplete = New(ErrCodeInternal, "у заявки нет исполнителя или суммы оплаты")
)
