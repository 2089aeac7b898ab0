package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
)

type FileReportInput struct {
	RequestID  uuid.UUID
	ReporterID uuid.UUID
	Reason     string
	IsDispute  bool
}

type FileReportUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	reportRepo  repository.ReportRepository
	notifier    gateway.Notifier
}

func NewFileReportUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	reportRepo repository.ReportRepository,
	notifier gateway.Notifier,
) *FileReportUseCase {
	return &FileReportUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		reportRepo:  reportRepo,
		notifier:    notifier,
	}
}

// Execute сохраняет жалобу. Жалоба-спор дополнительно переводит проект в disputed, деньги не двигаются.
func (uc *FileReportUseCase) Execute(ctx context.Context, input FileReportInput) (*entity.Report, error) {
	req, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	report, err := entity.NewReport(req.ID, input.ReporterID, input.Reason, input.IsDispute)
	if err != nil {
		return nil, err
	}

	if !input.IsDispute {
		if err := uc.reportRepo.Create(ctx, report); err != nil {
			return nil, err
		}
		return report, nil
	}

	prior := req.Status
	if err := req.OpenDispute(input.ReporterID); err != nil {
		return nil, err
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.UpdateIfStatus(ctx, req, prior); err != nil {
			return err
		}
		return uc.reportRepo.Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	if counterpart, ok := req.CounterpartOf(input.ReporterID); ok {
		uc.notifier.Notify(ctx, counterpart, entity.RequestNotification(entity.NotificationDisputeOpened,
			"Открыт спор", "По проекту «"+req.Title+"» открыт спор, решение примет администратор", req.ID))
	}
	return report, nil
}

type ListReportsUseCase struct {
	reportRepo repository.ReportRepository
}

func NewListReportsUseCase(reportRepo repository.ReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reportRepo: reportRepo}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, limit, offset int) ([]*entity.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.reportRepo.List(ctx, limit, offset)
}
