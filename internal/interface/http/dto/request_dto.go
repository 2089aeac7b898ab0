package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type CreateRequestRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget" binding:"required,gt=0"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
}

type RequestResponse struct {
	ID                      uuid.UUID  `json:"id"`
	OwnerID                 uuid.UUID  `json:"owner_id"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Budget                  float64    `json:"budget"`
	Status                  string     `json:"status"`
	RequestedPhotographerID *uuid.UUID `json:"requested_photographer_id,omitempty"`
	HiredPhotographerID     *uuid.UUID `json:"hired_photographer_id"`
	AcceptedBidID           *uuid.UUID `json:"accepted_bid_id"`
	AcceptedBidAmount       *float64   `json:"accepted_bid_amount"`
	ProjectChatRoomID       *uuid.UUID `json:"project_chat_room_id"`
	UnreadBidCount          int        `json:"unread_bid_count"`
	DisputeResolution       *string    `json:"dispute_resolution"`
	OwnerHasReviewed        bool       `json:"owner_has_reviewed"`
	PhotographerHasReviewed bool       `json:"photographer_has_reviewed"`
	DeliveredFiles          []string   `json:"delivered_files"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func ToRequestResponse(r *entity.Request) RequestResponse {
	resp := RequestResponse{
		ID:                      r.ID,
		OwnerID:                 r.OwnerID,
		Title:                   r.Title,
		Description:             r.Description,
		Budget:                  r.Budget.Float64(),
		Status:                  string(r.Status),
		RequestedPhotographerID: r.RequestedPhotographerID,
		HiredPhotographerID:     r.HiredPhotographerID,
		AcceptedBidID:           r.AcceptedBidID,
		ProjectChatRoomID:       r.ProjectChatRoomID,
		UnreadBidCount:          r.UnreadBidCount,
		OwnerHasReviewed:        r.OwnerHasReviewed,
		PhotographerHasReviewed: r.PhotographerHasReviewed,
		DeliveredFiles:          r.DeliveredFiles,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
	if r.AcceptedBidAmount != nil {
		amount := r.AcceptedBidAmount.Float64()
		resp.AcceptedBidAmount = &amount
	}
	if r.DisputeResolution != nil {
		res := string(*r.DisputeResolution)
		resp.DisputeResolution = &res
	}
	if resp.DeliveredFiles == nil {
		resp.DeliveredFiles = []string{}
	}
	return resp
}

func ToRequestResponses(requests []*entity.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToRequestResponse(r))
	}
	return out
}

type BidResponse struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	BidderID  uuid.UUID `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBidResponse(b *entity.Bid) BidResponse {
	return BidResponse{
		ID:        b.ID,
		RequestID: b.RequestID,
		BidderID:  b.BidderID,
		Amount:    b.Amount.Float64(),
		Note:      b.Note,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func ToBidResponses(bids []*entity.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, ToBidResponse(b))
	}
	return out
}

type DeliveryResponse struct {
	Request RequestResponse `json:"request"`
	Files   []string        `json:"files"`
}
