package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/request"
)

type RequestHandler struct {
	createUC   *request.CreateRequestUseCase
	getUC      *request.GetRequestUseCase
	listOpenUC *request.ListOpenRequestsUseCase
	listMineUC *request.ListMyRequestsUseCase
	approveUC  *request.ApproveDeliveryUseCase
}

func NewRequestHandler(
	createUC *request.CreateRequestUseCase,
	getUC *request.GetRequestUseCase,
	listOpenUC *request.ListOpenRequestsUseCase,
	listMineUC *request.ListMyRequestsUseCase,
	approveUC *request.ApproveDeliveryUseCase,
) *RequestHandler {
	return &RequestHandler{
		createUC:   createUC,
		getUC:      getUC,
		listOpenUC: listOpenUC,
		listMineUC: listMineUC,
		approveUC:  approveUC,
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	budget, err := valueobject.MoneyFromFloat(req.Budget)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), request.CreateRequestInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      budget,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRequestResponse(created))
}

func (h *RequestHandler) Get(c *gin.Context) {
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

	r, err := h.getUC.Execute(c.Request.Context(), request.GetRequestInput{
		RequestID: requestID,
		CallerID:  userID,
		IsAdmin:   middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(r))
}

// ListOpen обрабатывает GET /requests: лента открытых заявок.
func (h *RequestHandler) ListOpen(c *gin.Context) {
	limit, offset := pagination(c, 20)

	requests, total, err := h.listOpenUC.Execute(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToRequestResponses(requests), total, limit, offset)
}

func (h *RequestHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	requests, err := h.listMineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponses(requests))
}

func (h *RequestHandler) Approve(c *gin.Context) {
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

	r, err := h.approveUC.Execute(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponse(r))
}
