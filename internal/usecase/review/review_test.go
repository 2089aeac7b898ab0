package review_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/review"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

type env struct {
	requests     *usecasetest.RequestRepo
	reviews      *usecasetest.ReviewRepo
	profiles     *usecasetest.ProfileRepo
	notifier     *usecasetest.Notifier
	uc           *review.SubmitReviewUseCase
	owner        uuid.UUID
	photographer uuid.UUID
	req          *entity.Request
}

// newEnv: завершённый проект, фотографу начислен счётчик ожидающего отзыва.
func newEnv(t *testing.T) *env {
	t.Helper()
	owner, photographer := uuid.New(), uuid.New()
	req, err := entity.NewRequest(owner, "Интерьер", "", 10000)
	require.NoError(t, err)
	require.NoError(t, req.Hire(photographer, nil, 10000, entity.ProjectChatRoomID(req.ID)))
	require.NoError(t, req.Deliver(photographer, []string{"https://cdn/1.jpg"}))
	_, err = req.ApproveDelivery(owner)
	require.NoError(t, err)

	e := &env{
		requests:     usecasetest.NewRequestRepo(req),
		reviews:      &usecasetest.ReviewRepo{},
		profiles:     usecasetest.NewProfileRepo(),
		notifier:     &usecasetest.Notifier{},
		owner:        owner,
		photographer: photographer,
		req:          req,
	}
	require.NoError(t, e.profiles.IncrementCounter(context.Background(), photographer, entity.CounterPendingReviews, 1))
	e.uc = review.NewSubmitReviewUseCase(&usecasetest.TxManager{}, e.requests, e.reviews, e.profiles, e.notifier)
	return e
}

func TestSubmitReview_TargetsCounterpart(t *testing.T) {
	e := newEnv(t)

	r, err := e.uc.Execute(context.Background(), review.SubmitReviewInput{
		RequestID: e.req.ID, ReviewerID: e.photographer, Rating: 5, Comment: " Отличный клиент ",
	})

	require.NoError(t, err)
	assert.Equal(t, e.owner, r.RevieweeID)
	assert.Equal(t, "Отличный клиент", r.Comment)
	assert.True(t, e.requests.Get(e.req.ID).PhotographerHasReviewed)
	assert.False(t, e.requests.Get(e.req.ID).OwnerHasReviewed)
	assert.Zero(t, e.profiles.Counter(e.photographer, entity.CounterPendingReviews))
	assert.Equal(t, []entity.NotificationType{entity.NotificationReviewReceived}, e.notifier.For(e.owner))
}

func TestSubmitReview_OncePerParty(t *testing.T) {
	e := newEnv(t)
	input := review.SubmitReviewInput{RequestID: e.req.ID, ReviewerID: e.owner, Rating: 4}

	_, err := e.uc.Execute(context.Background(), input)
	require.NoError(t, err)
	_, err = e.uc.Execute(context.Background(), input)

	assert.ErrorIs(t, err, apperror.ErrAlreadyReviewed)
	assert.Len(t, e.reviews.Reviews, 1)
	assert.Zero(t, e.profiles.Counter(e.owner, entity.CounterPendingReviews), "счётчик не уходит в минус")
}

func TestSubmitReview_Guards(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Execute(ctx, review.SubmitReviewInput{RequestID: e.req.ID, ReviewerID: uuid.New(), Rating: 5})
	assert.True(t, apperror.IsForbidden(err))

	_, err = e.uc.Execute(ctx, review.SubmitReviewInput{RequestID: e.req.ID, ReviewerID: e.owner, Rating: 6})
	assert.True(t, apperror.IsValidation(err))
	assert.False(t, e.requests.Get(e.req.ID).OwnerHasReviewed)
}

func TestSubmitReview_RequiresCompleted(t *testing.T) {
	owner := uuid.New()
	req, err := entity.NewRequest(owner, "x", "", 100)
	require.NoError(t, err)
	uc := review.NewSubmitReviewUseCase(&usecasetest.TxManager{}, usecasetest.NewRequestRepo(req),
		&usecasetest.ReviewRepo{}, usecasetest.NewProfileRepo(), &usecasetest.Notifier{})

	_, err = uc.Execute(context.Background(), review.SubmitReviewInput{RequestID: req.ID, ReviewerID: owner, Rating: 5})

	assert.True(t, apperror.IsValidation(err))
}

func TestListReviews(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Execute(context.Background(), review.SubmitReviewInput{RequestID: e.req.ID, ReviewerID: e.owner, Rating: 5})
	require.NoError(t, err)

	list, err := review.NewListReviewsUseCase(e.reviews).Execute(context.Background(), e.photographer, 0, 0)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)
}
