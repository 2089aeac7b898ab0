package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxRequestTitleLength       = 200
	MaxRequestDescriptionLength = 5000
	MaxBidNoteLength            = 2000
	MaxMessageLength            = 5000
	MaxReportReasonLength       = 2000
	MaxReviewCommentLength      = 2000
	MaxDisplayNameLength        = 100
)

// ValidateLength проверяет длину строки в символах. min или max, равные нулю, не проверяются.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s должно быть не короче %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s должно быть не длиннее %d символов", fieldName, max))
	}
	return nil
}

// ValidateText обрезает пробелы и проверяет обязательность и верхнюю границу длины.
func ValidateText(fieldName, value string, required bool, max int) (string, error) {
	value = strings.TrimSpace(value)
	if required && value == "" {
		return "", apperror.New(apperror.ErrCodeValidation, fieldName+" обязательно")
	}
	if err := ValidateLength(fieldName, value, 0, max); err != nil {
		return "", err
	}
	return value, nil
}
