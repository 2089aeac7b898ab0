package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/bid"
)

type BidHandler struct {
	placeUC     *bid.PlaceBidUseCase
	cancelUC    *bid.CancelBidUseCase
	listByReqUC *bid.ListRequestBidsUseCase
	listMineUC  *bid.ListMyBidsUseCase
}

func NewBidHandler(
	placeUC *bid.PlaceBidUseCase,
	cancelUC *bid.CancelBidUseCase,
	listByReqUC *bid.ListRequestBidsUseCase,
	listMineUC *bid.ListMyBidsUseCase,
) *BidHandler {
	return &BidHandler{
		placeUC:     placeUC,
		cancelUC:    cancelUC,
		listByReqUC: listByReqUC,
		listMineUC:  listMineUC,
	}
}

// Place обрабатывает POST /requests/:id/bids.
func (h *BidHandler) Place(c *gin.Context) {
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

	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	amount, err := valueobject.MoneyFromFloat(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	placed, err := h.placeUC.Execute(c.Request.Context(), bid.PlaceBidInput{
		RequestID: requestID,
		BidderID:  userID,
		Amount:    amount,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToBidResponse(placed))
}

// ListForRequest отдаёт ставки владельцу заявки и сбрасывает счётчик новых ставок.
func (h *BidHandler) ListForRequest(c *gin.Context) {
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

	bids, err := h.listByReqUC.Execute(c.Request.Context(), requestID, userID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponses(bids))
}

func (h *BidHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	bidID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID ставки")
		return
	}

	cancelled, err := h.cancelUC.Execute(c.Request.Context(), bidID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponse(cancelled))
}

func (h *BidHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	bids, err := h.listMineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponses(bids))
}
