package request_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/request"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

type env struct {
	tx           *usecasetest.TxManager
	requests     *usecasetest.RequestRepo
	profiles     *usecasetest.ProfileRepo
	escrow       *usecasetest.EscrowRepo
	notifier     *usecasetest.Notifier
	owner        uuid.UUID
	photographer uuid.UUID
	req          *entity.Request
}

// newEnv создаёт заявку в работе с принятой ставкой 80.00 при бюджете 100.00.
func newEnv(t *testing.T) *env {
	t.Helper()
	owner, photographer := uuid.New(), uuid.New()
	req, err := entity.NewRequest(owner, "Свадьба", "Съёмка на весь день", 10000)
	require.NoError(t, err)
	bidID := uuid.New()
	require.NoError(t, req.Hire(photographer, &bidID, 8000, entity.ProjectChatRoomID(req.ID)))

	return &env{
		tx:           &usecasetest.TxManager{},
		requests:     usecasetest.NewRequestRepo(req),
		profiles:     usecasetest.NewProfileRepo(),
		escrow:       usecasetest.NewEscrowRepo(),
		notifier:     &usecasetest.Notifier{},
		owner:        owner,
		photographer: photographer,
		req:          req,
	}
}

func (e *env) deliver(t *testing.T) {
	t.Helper()
	uc := request.NewDeliverWorkUseCase(e.tx, e.requests, e.notifier)
	_, err := uc.Execute(context.Background(), request.DeliverWorkInput{
		RequestID:      e.req.ID,
		PhotographerID: e.photographer,
		Files:          []string{"https://cdn/1.jpg"},
	})
	require.NoError(t, err)
}

func TestCreateRequestUseCase(t *testing.T) {
	repo := usecasetest.NewRequestRepo()
	uc := request.NewCreateRequestUseCase(repo)

	req, err := uc.Execute(context.Background(), request.CreateRequestInput{
		OwnerID: uuid.New(),
		Title:   "  Портрет  ",
		Budget:  5000,
	})

	require.NoError(t, err)
	assert.Equal(t, "Портрет", req.Title)
	assert.Equal(t, valueobject.RequestStatusOpen, req.Status)
	assert.NotNil(t, repo.Get(req.ID))
}

func TestCreateRequestUseCase_RejectsZeroBudget(t *testing.T) {
	uc := request.NewCreateRequestUseCase(usecasetest.NewRequestRepo())

	_, err := uc.Execute(context.Background(), request.CreateRequestInput{OwnerID: uuid.New(), Title: "x"})
	assert.True(t, apperror.IsValidation(err))
}

func TestGetRequestUseCase_HidesForeignProjects(t *testing.T) {
	e := newEnv(t)
	uc := request.NewGetRequestUseCase(e.requests)

	_, err := uc.Execute(context.Background(), request.GetRequestInput{RequestID: e.req.ID, CallerID: uuid.New()})
	assert.True(t, apperror.IsNotFound(err))

	got, err := uc.Execute(context.Background(), request.GetRequestInput{RequestID: e.req.ID, CallerID: e.photographer})
	require.NoError(t, err)
	assert.Equal(t, e.req.ID, got.ID)

	_, err = uc.Execute(context.Background(), request.GetRequestInput{RequestID: e.req.ID, CallerID: uuid.New(), IsAdmin: true})
	assert.NoError(t, err)
}

func TestDeliverWorkUseCase_SecondDeliveryIsAdditive(t *testing.T) {
	e := newEnv(t)
	uc := request.NewDeliverWorkUseCase(e.tx, e.requests, e.notifier)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request.DeliverWorkInput{RequestID: e.req.ID, PhotographerID: e.photographer, Files: []string{"a.jpg"}})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, request.DeliverWorkInput{RequestID: e.req.ID, PhotographerID: e.photographer, Files: []string{"b.jpg"}})
	require.NoError(t, err)

	stored := e.requests.Get(e.req.ID)
	assert.Equal(t, valueobject.RequestStatusDelivered, stored.Status)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, stored.DeliveredFiles)
	assert.Equal(t, []entity.NotificationType{entity.NotificationDelivered, entity.NotificationDelivered}, e.notifier.For(e.owner))
}

func TestDeliverWorkUseCase_OnlyHiredPhotographer(t *testing.T) {
	e := newEnv(t)
	uc := request.NewDeliverWorkUseCase(e.tx, e.requests, e.notifier)

	_, err := uc.Execute(context.Background(), request.DeliverWorkInput{RequestID: e.req.ID, PhotographerID: uuid.New(), Files: []string{"a.jpg"}})
	assert.True(t, apperror.IsForbidden(err))
	assert.Equal(t, valueobject.RequestStatusInProgress, e.requests.Get(e.req.ID).Status)
}

func TestApproveDeliveryUseCase_PaysAcceptedBid(t *testing.T) {
	e := newEnv(t)
	e.deliver(t)
	uc := request.NewApproveDeliveryUseCase(e.tx, e.requests, e.profiles, e.escrow, e.notifier)

	req, err := uc.Execute(context.Background(), e.req.ID, e.owner)

	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusCompleted, req.Status)
	assert.Equal(t, valueobject.Money(8000), e.profiles.Balance(e.photographer))
	assert.Equal(t, 1, e.profiles.Counter(e.photographer, entity.CounterPendingReviews))
	assert.Equal(t, []valueobject.EscrowStatus{valueobject.EscrowStatusReleased}, e.escrow.Statuses(e.req.ID))
	assert.Equal(t,
		[]entity.NotificationType{entity.NotificationPaymentReleased, entity.NotificationReviewRequested},
		e.notifier.For(e.photographer))
}

func TestApproveDeliveryUseCase_SecondApproveLoses(t *testing.T) {
	e := newEnv(t)
	e.deliver(t)
	uc := request.NewApproveDeliveryUseCase(e.tx, e.requests, e.profiles, e.escrow, e.notifier)
	ctx := context.Background()

	_, err := uc.Execute(ctx, e.req.ID, e.owner)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, e.req.ID, e.owner)

	assert.Error(t, err)
	assert.Equal(t, valueobject.Money(8000), e.profiles.Balance(e.photographer), "оплата зачисляется один раз")
}

// staleRequestRepo отдаёт снимок заявки, прочитанный до чужой записи.
type staleRequestRepo struct {
	*usecasetest.RequestRepo
	stale *entity.Request
}

func (r staleRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	c := *r.stale
	return &c, nil
}

func TestApproveDeliveryUseCase_RaceLostWritesNothing(t *testing.T) {
	e := newEnv(t)
	e.deliver(t)
	stale := e.requests.Get(e.req.ID)
	e.requests.Requests[e.req.ID].Status = valueobject.RequestStatusDisputed

	repo := staleRequestRepo{RequestRepo: e.requests, stale: stale}
	uc := request.NewApproveDeliveryUseCase(e.tx, repo, e.profiles, e.escrow, e.notifier)

	_, err := uc.Execute(context.Background(), e.req.ID, e.owner)

	assert.True(t, apperror.IsRaceLost(err))
	assert.Equal(t, valueobject.Money(0), e.profiles.Balance(e.photographer))
	assert.Empty(t, e.escrow.Statuses(e.req.ID))
	assert.Empty(t, e.notifier.For(e.photographer))
}

func TestApproveDeliveryUseCase_NotOwner(t *testing.T) {
	e := newEnv(t)
	e.deliver(t)
	uc := request.NewApproveDeliveryUseCase(e.tx, e.requests, e.profiles, e.escrow, e.notifier)

	_, err := uc.Execute(context.Background(), e.req.ID, e.photographer)
	assert.True(t, apperror.IsForbidden(err))
}

func TestDisableRequestUseCase_RefundsHeldFunds(t *testing.T) {
	e := newEnv(t)
	uc := request.NewDisableRequestUseCase(e.tx, e.requests, e.profiles, e.escrow, e.notifier)

	req, err := uc.Execute(context.Background(), e.req.ID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusDisabled, req.Status)
	assert.Equal(t, valueobject.Money(8000), e.profiles.Balance(e.owner))
	assert.Equal(t, []valueobject.EscrowStatus{valueobject.EscrowStatusRefunded}, e.escrow.Statuses(e.req.ID))
	assert.Contains(t, e.notifier.For(e.photographer), entity.NotificationRequestDisabled)
}

func TestDisableRequestUseCase_OpenRequestHasNoRefund(t *testing.T) {
	owner := uuid.New()
	req, err := entity.NewRequest(owner, "Портрет", "", 5000)
	require.NoError(t, err)
	requests := usecasetest.NewRequestRepo(req)
	profiles := usecasetest.NewProfileRepo()
	escrow := usecasetest.NewEscrowRepo()

	uc := request.NewDisableRequestUseCase(&usecasetest.TxManager{}, requests, profiles, escrow, &usecasetest.Notifier{})
	_, err = uc.Execute(context.Background(), req.ID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.Money(0), profiles.Balance(owner))
	assert.Empty(t, escrow.Statuses(req.ID))

	_, err = uc.Execute(context.Background(), req.ID)
	assert.True(t, apperror.IsValidation(err), "отключённая заявка больше не меняется")
}

func TestDisableRequestUseCase_PendingBookingIsRefunded(t *testing.T) {
	owner := uuid.New()
	req, err := entity.NewDirectBooking(uuid.New(), owner, uuid.New(), "Портрет", "", 12000)
	require.NoError(t, err)
	requests := usecasetest.NewRequestRepo(req)
	profiles := usecasetest.NewProfileRepo()
	escrow := usecasetest.NewEscrowRepo()

	uc := request.NewDisableRequestUseCase(&usecasetest.TxManager{}, requests, profiles, escrow, &usecasetest.Notifier{})
	_, err = uc.Execute(context.Background(), req.ID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.Money(12000), profiles.Balance(owner))
	assert.Equal(t, []valueobject.EscrowStatus{valueobject.EscrowStatusRefunded}, escrow.Statuses(req.ID))
}

func TestListOpenRequestsUseCase_ClampsLimit(t *testing.T) {
	owner := uuid.New()
	var reqs []*entity.Request
	for i := 0; i < 3; i++ {
		r, err := entity.NewRequest(owner, "r", "", 100)
		require.NoError(t, err)
		reqs = append(reqs, r)
	}
	uc := request.NewListOpenRequestsUseCase(usecasetest.NewRequestRepo(reqs...))

	items, total, err := uc.Execute(context.Background(), 1000, -5)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)
}
