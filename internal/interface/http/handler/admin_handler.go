package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/acceptance"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/dispute"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/payout"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/request"
)

// AdminHandler обслуживает /api/admin. Доступ проверяет middleware.AdminOnly.
type AdminHandler struct {
	disableUC        *request.DisableRequestUseCase
	listByStatusUC   *request.ListByStatusUseCase
	approveBookingUC *acceptance.ApproveBookingUseCase
	resolveUC        *dispute.ResolveDisputeUseCase
	listReportsUC    *dispute.ListReportsUseCase
	completePayoutUC *payout.CompletePayoutUseCase
	listPayoutsUC    *payout.ListPendingPayoutsUseCase
}

func NewAdminHandler(
	disableUC *request.DisableRequestUseCase,
	listByStatusUC *request.ListByStatusUseCase,
	approveBookingUC *acceptance.ApproveBookingUseCase,
	resolveUC *dispute.ResolveDisputeUseCase,
	listReportsUC *dispute.ListReportsUseCase,
	completePayoutUC *payout.CompletePayoutUseCase,
	listPayoutsUC *payout.ListPendingPayoutsUseCase,
) *AdminHandler {
	return &AdminHandler{
		disableUC:        disableUC,
		listByStatusUC:   listByStatusUC,
		approveBookingUC: approveBookingUC,
		resolveUC:        resolveUC,
		listReportsUC:    listReportsUC,
		completePayoutUC: completePayoutUC,
		listPayoutsUC:    listPayoutsUC,
	}
}

// ListRequests обрабатывает GET /admin/requests?status=disputed.
func (h *AdminHandler) ListRequests(c *gin.Context) {
	limit, offset := pagination(c, 50)

	requests, err := h.listByStatusUC.Execute(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponses(requests))
}

func (h *AdminHandler) DisableRequest(c *gin.Context) {
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	r, err := h.disableUC.Execute(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(r))
}

func (h *AdminHandler) ApproveBooking(c *gin.Context) {
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	r, err := h.approveBookingUC.Execute(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(r))
}

// ResolveDispute обрабатывает POST /admin/requests/:id/resolve {outcome: refund|pay}.
func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "укажите решение по спору")
		return
	}
	outcome, err := valueobject.NewDisputeOutcome(req.Outcome)
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.resolveUC.Execute(c.Request.Context(), requestID, outcome)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(r))
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	limit, offset := pagination(c, 50)

	reports, err := h.listReportsUC.Execute(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToReportResponses(reports))
}

func (h *AdminHandler) ListPendingPayouts(c *gin.Context) {
	limit, offset := pagination(c, 50)

	payouts, err := h.listPayoutsUC.Execute(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPayoutResponses(payouts))
}

func (h *AdminHandler) CompletePayout(c *gin.Context) {
	payoutID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID выплаты")
		return
	}

	p, err := h.completePayoutUC.Execute(c.Request.Context(), payoutID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPayoutResponse(p))
}
