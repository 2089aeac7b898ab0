package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/dispute"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/review"
)

type ReviewHandler struct {
	submitUC *review.SubmitReviewUseCase
	listUC   *review.ListReviewsUseCase
	reportUC *dispute.FileReportUseCase
}

func NewReviewHandler(submitUC *review.SubmitReviewUseCase, listUC *review.ListReviewsUseCase, reportUC *dispute.FileReportUseCase) *ReviewHandler {
	return &ReviewHandler{submitUC: submitUC, listUC: listUC, reportUC: reportUC}
}

// Submit обрабатывает POST /requests/:id/reviews.
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "оценка должна быть от 1 до 5")
		return
	}

	created, err := h.submitUC.Execute(c.Request.Context(), review.SubmitReviewInput{
		RequestID:  requestID,
		ReviewerID: userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReviewResponse(created))
}

// ListForUser обрабатывает GET /users/:id/reviews.
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID пользователя")
		return
	}
	limit, offset := pagination(c, 20)

	reviews, err := h.listUC.Execute(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReviewResponses(reviews))
}

// Report обрабатывает POST /requests/:id/reports. С is_dispute=true открывает спор.
func (h *ReviewHandler) Report(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	var req dto.FileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "укажите причину жалобы")
		return
	}

	report, err := h.reportUC.Execute(c.Request.Context(), dispute.FileReportInput{
		RequestID:  requestID,
		ReporterID: userID,
		Reason:     req.Reason,
		IsDispute:  req.IsDispute,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToReportResponse(report))
}
