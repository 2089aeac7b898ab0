package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

type ProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// MeResponse: собственный профиль с балансом и счётчиками.
type MeResponse struct {
	ProfileResponse
	Email               string  `json:"email"`
	Balance             float64 `json:"balance"`
	NewGigCount         int     `json:"new_gig_count"`
	PendingReviewCount  int     `json:"pending_review_count"`
	PayoutAccountLinked bool    `json:"payout_account_linked"`
}

func ToProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
	}
}

func ToMeResponse(p *entity.Profile) MeResponse {
	return MeResponse{
		ProfileResponse:     ToProfileResponse(p),
		Email:               p.Email,
		Balance:             p.Balance.Float64(),
		NewGigCount:         p.NewGigCount,
		PendingReviewCount:  p.PendingReviewCount,
		PayoutAccountLinked: p.PayoutAccountID != nil && *p.PayoutAccountID != "",
	}
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	RevieweeID uuid.UUID `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToReviewResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		RequestID:  r.RequestID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func ToReviewResponses(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r))
	}
	return out
}

type FileReportRequest struct {
	Reason    string `json:"reason" binding:"required"`
	IsDispute bool   `json:"is_dispute"`
}

type ResolveDisputeRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

type ReportResponse struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	ReporterID uuid.UUID `json:"reporter_id"`
	Reason     string    `json:"reason"`
	IsDispute  bool      `json:"is_dispute"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToReportResponse(r *entity.Report) ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		RequestID:  r.RequestID,
		ReporterID: r.ReporterID,
		Reason:     r.Reason,
		IsDispute:  r.IsDispute,
		CreatedAt:  r.CreatedAt,
	}
}

func ToReportResponses(reports []*entity.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ToReportResponse(r))
	}
	return out
}

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Link      string     `json:"link"`
	RelatedID *uuid.UUID `json:"related_id"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToNotificationResponses(items []*entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			Link:      n.Link,
			RelatedID: n.RelatedID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
