package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/acceptance"
)

// AcceptanceHandler ведёт оплату: принятие ставки, прямое бронирование и подтверждение после оплаты.
type AcceptanceHandler struct {
	initiateUC *acceptance.InitiateAcceptanceUseCase
	bookingUC  *acceptance.InitiateBookingUseCase
	confirmUC  *acceptance.ConfirmAcceptanceUseCase
}

func NewAcceptanceHandler(
	initiateUC *acceptance.InitiateAcceptanceUseCase,
	bookingUC *acceptance.InitiateBookingUseCase,
	confirmUC *acceptance.ConfirmAcceptanceUseCase,
) *AcceptanceHandler {
	return &AcceptanceHandler{
		initiateUC: initiateUC,
		bookingUC:  bookingUC,
		confirmUC:  confirmUC,
	}
}

// Accept обрабатывает POST /requests/:id/accept и возвращает данные для оплаты.
func (h *AcceptanceHandler) Accept(c *gin.Context) {
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

	var req dto.AcceptBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	bidID, err := uuid.Parse(req.BidID)
	if err != nil {
		response.BadRequest(c, "некорректный ID ставки")
		return
	}

	checkout, err := h.initiateUC.Execute(c.Request.Context(), acceptance.InitiateAcceptanceInput{
		RequestID: requestID,
		BidID:     bidID,
		CallerID:  userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCheckoutResponse(checkout))
}

func (h *AcceptanceHandler) Book(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	photographerID, err := uuid.Parse(req.PhotographerID)
	if err != nil {
		response.BadRequest(c, "некорректный ID фотографа")
		return
	}
	budget, err := valueobject.MoneyFromFloat(req.Budget)
	if err != nil {
		response.Error(c, err)
		return
	}

	checkout, err := h.bookingUC.Execute(c.Request.Context(), acceptance.InitiateBookingInput{
		OwnerID:        userID,
		PhotographerID: photographerID,
		Title:          req.Title,
		Description:    req.Description,
		Budget:         budget,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCheckoutResponse(checkout))
}

// Confirm вызывается клиентом после успешной оплаты. Повторный вызов безопасен.
func (h *AcceptanceHandler) Confirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.ConfirmAcceptanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	handle, err := uuid.Parse(req.Handle)
	if err != nil {
		response.BadRequest(c, "некорректный идентификатор оплаты")
		return
	}

	r, err := h.confirmUC.Execute(c.Request.Context(), handle, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(r))
}
