package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/escrow"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/payout"
)

// PayoutHandler обслуживает выплаты фотографу и историю поступлений.
type PayoutHandler struct {
	requestUC  *payout.RequestPayoutUseCase
	listMineUC *payout.ListMyPayoutsUseCase
	connectUC  *payout.ConnectAccountUseCase
	paymentsUC *escrow.ListMyPaymentsUseCase
}

func NewPayoutHandler(
	requestUC *payout.RequestPayoutUseCase,
	listMineUC *payout.ListMyPayoutsUseCase,
	connectUC *payout.ConnectAccountUseCase,
	paymentsUC *escrow.ListMyPaymentsUseCase,
) *PayoutHandler {
	return &PayoutHandler{
		requestUC:  requestUC,
		listMineUC: listMineUC,
		connectUC:  connectUC,
		paymentsUC: paymentsUC,
	}
}

// Request обрабатывает POST /payouts: выводится весь текущий баланс.
func (h *PayoutHandler) Request(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	p, err := h.requestUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPayoutResponse(p))
}

func (h *PayoutHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	payouts, err := h.listMineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPayoutResponses(payouts))
}

func (h *PayoutHandler) ConnectAccount(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	url, err := h.connectUC.Execute(c.Request.Context(), identity.UserID, identity.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ConnectAccountResponse{URL: url})
}

// ListPayments обрабатывает GET /payments: движения эскроу, где пользователь получатель.
func (h *PayoutHandler) ListPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	payments, err := h.paymentsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToEscrowPaymentResponses(payments))
}
