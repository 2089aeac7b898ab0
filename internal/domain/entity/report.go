package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/validation"
)

// Report: жалоба участника. С флагом IsDispute переводит заявку в спор.
type Report struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	ReporterID uuid.UUID
	Reason     string
	IsDispute  bool
	CreatedAt  time.Time
}

func NewReport(requestID, reporterID uuid.UUID, reason string, isDispute bool) (*Report, error) {
	reason, err := validation.ValidateText("причина жалобы", reason, true, validation.MaxReportReasonLength)
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:         uuid.New(),
		RequestID:  requestID,
		ReporterID: reporterID,
		Reason:     reason,
		IsDispute:  isDispute,
		CreatedAt:  time.Now(),
	}, nil
}
