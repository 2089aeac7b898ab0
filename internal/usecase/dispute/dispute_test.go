package dispute_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/dispute"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

type env struct {
	tx           *usecasetest.TxManager
	requests     *usecasetest.RequestRepo
	reports      *usecasetest.ReportRepo
	profiles     *usecasetest.ProfileRepo
	escrow       *usecasetest.EscrowRepo
	notifier     *usecasetest.Notifier
	owner        uuid.UUID
	photographer uuid.UUID
	req          *entity.Request
}

// newEnv: проект в работе с принятой ставкой 200.00.
func newEnv(t *testing.T) *env {
	t.Helper()
	owner, photographer := uuid.New(), uuid.New()
	req, err := entity.NewRequest(owner, "Каталог", "", 25000)
	require.NoError(t, err)
	bidID := uuid.New()
	require.NoError(t, req.Hire(photographer, &bidID, 20000, entity.ProjectChatRoomID(req.ID)))

	return &env{
		tx:           &usecasetest.TxManager{},
		requests:     usecasetest.NewRequestRepo(req),
		reports:      &usecasetest.ReportRepo{},
		profiles:     usecasetest.NewProfileRepo(),
		escrow:       usecasetest.NewEscrowRepo(),
		notifier:     &usecasetest.Notifier{},
		owner:        owner,
		photographer: photographer,
		req:          req,
	}
}

func (e *env) fileReport() *dispute.FileReportUseCase {
	return dispute.NewFileReportUseCase(e.tx, e.requests, e.reports, e.notifier)
}

func (e *env) resolve() *dispute.ResolveDisputeUseCase {
	return dispute.NewResolveDisputeUseCase(e.tx, e.requests, e.profiles, e.escrow, e.notifier)
}

func (e *env) openDispute(t *testing.T) {
	t.Helper()
	_, err := e.fileReport().Execute(context.Background(), dispute.FileReportInput{
		RequestID: e.req.ID, ReporterID: e.owner, Reason: "Фото не пришли", IsDispute: true,
	})
	require.NoError(t, err)
}

func TestFileReport_DisputeMovesRequest(t *testing.T) {
	e := newEnv(t)

	e.openDispute(t)

	assert.Equal(t, valueobject.RequestStatusDisputed, e.requests.Get(e.req.ID).Status)
	require.Len(t, e.reports.Reports, 1)
	assert.True(t, e.reports.Reports[0].IsDispute)
	assert.Equal(t, []entity.NotificationType{entity.NotificationDisputeOpened}, e.notifier.For(e.photographer))
	assert.Zero(t, e.profiles.Balance(e.owner), "спор не двигает деньги")
	assert.Zero(t, e.profiles.Balance(e.photographer))
}

func TestFileReport_PlainReportOnlyStored(t *testing.T) {
	e := newEnv(t)
	outsider := uuid.New()

	_, err := e.fileReport().Execute(context.Background(), dispute.FileReportInput{
		RequestID: e.req.ID, ReporterID: outsider, Reason: "Спам в описании",
	})

	require.NoError(t, err)
	assert.Len(t, e.reports.Reports, 1)
	assert.Equal(t, valueobject.RequestStatusInProgress, e.requests.Get(e.req.ID).Status)
	assert.Empty(t, e.notifier.Sent)
}

func TestFileReport_DisputeRequiresParticipant(t *testing.T) {
	e := newEnv(t)

	_, err := e.fileReport().Execute(context.Background(), dispute.FileReportInput{
		RequestID: e.req.ID, ReporterID: uuid.New(), Reason: "x", IsDispute: true,
	})

	assert.True(t, apperror.IsForbidden(err))
	assert.Empty(t, e.reports.Reports)
}

func TestResolveDispute_PayPhotographer(t *testing.T) {
	e := newEnv(t)
	e.openDispute(t)

	req, err := e.resolve().Execute(context.Background(), e.req.ID, valueobject.DisputeOutcomePay)

	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusCompleted, req.Status)
	stored := e.requests.Get(e.req.ID)
	require.NotNil(t, stored.DisputeResolution)
	assert.Equal(t, valueobject.DisputeResolutionPaid, *stored.DisputeResolution)
	assert.Equal(t, valueobject.Money(20000), e.profiles.Balance(e.photographer))
	assert.Zero(t, e.profiles.Balance(e.owner))
	assert.Equal(t, []valueobject.EscrowStatus{valueobject.EscrowStatusReleased}, e.escrow.Statuses(e.req.ID))
}

func TestResolveDispute_RefundRequester(t *testing.T) {
	e := newEnv(t)
	e.openDispute(t)

	_, err := e.resolve().Execute(context.Background(), e.req.ID, valueobject.DisputeOutcomeRefund)

	require.NoError(t, err)
	assert.Equal(t, valueobject.Money(20000), e.profiles.Balance(e.owner))
	assert.Zero(t, e.profiles.Balance(e.photographer))
	assert.Equal(t, valueobject.DisputeResolutionRefunded, *e.requests.Get(e.req.ID).DisputeResolution)
	assert.Equal(t, []valueobject.EscrowStatus{valueobject.EscrowStatusRefunded}, e.escrow.Statuses(e.req.ID))
}

func TestResolveDispute_SecondResolutionCreditsNothing(t *testing.T) {
	e := newEnv(t)
	e.openDispute(t)
	uc := e.resolve()

	_, err := uc.Execute(context.Background(), e.req.ID, valueobject.DisputeOutcomePay)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), e.req.ID, valueobject.DisputeOutcomeRefund)

	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, valueobject.Money(20000), e.profiles.Balance(e.photographer))
	assert.Zero(t, e.profiles.Balance(e.owner))
}

func TestResolveDispute_NotDisputed(t *testing.T) {
	e := newEnv(t)

	_, err := e.resolve().Execute(context.Background(), e.req.ID, valueobject.DisputeOutcomePay)

	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, e.profiles.Balance(e.photographer))
}

func TestListReports(t *testing.T) {
	e := newEnv(t)
	e.openDispute(t)

	reports, err := dispute.NewListReportsUseCase(e.reports).Execute(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Len(t, reports, 1)
}
