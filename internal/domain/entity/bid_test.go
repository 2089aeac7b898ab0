package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

func TestNewBid_Guards(t *testing.T) {
	r := newOpenRequest(t, 10000)

	_, err := NewBid(r, r.OwnerID, 5000, 0, "")
	assert.True(t, apperror.IsForbidden(err))

	_, err = NewBid(r, uuid.New(), 0, 0, "")
	assert.True(t, apperror.IsValidation(err))

	_, err = NewBid(r, uuid.New(), 200000, 100000, "")
	assert.True(t, apperror.IsValidation(err))

	bid, err := NewBid(r, uuid.New(), 8000, 100000, "могу в субботу")
	require.NoError(t, err)
	assert.Equal(t, valueobject.BidStatusActive, bid.Status)
}

func TestNewBid_ClosedRequest(t *testing.T) {
	r := newOpenRequest(t, 10000)
	require.NoError(t, r.Hire(uuid.New(), nil, 8000, uuid.New()))

	_, err := NewBid(r, uuid.New(), 5000, 0, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestBid_CancelTwice(t *testing.T) {
	r := newOpenRequest(t, 10000)
	bidder := uuid.New()
	bid, err := NewBid(r, bidder, 8000, 0, "")
	require.NoError(t, err)

	require.NoError(t, bid.Cancel(bidder))
	assert.Equal(t, valueobject.BidStatusCancelled, bid.Status)

	err = bid.Cancel(bidder)
	assert.ErrorIs(t, err, apperror.ErrBidNotActive)
	assert.Equal(t, valueobject.BidStatusCancelled, bid.Status)
}

func TestBid_CancelByStranger(t *testing.T) {
	r := newOpenRequest(t, 10000)
	bid, err := NewBid(r, uuid.New(), 8000, 0, "")
	require.NoError(t, err)

	assert.True(t, apperror.IsForbidden(bid.Cancel(uuid.New())))
	assert.True(t, bid.IsActive())
}
