package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	getMeUC  *profile.GetMeUseCase
	getUC    *profile.GetProfileUseCase
	updateUC *profile.UpdateMeUseCase
	resetUC  *profile.ResetCounterUseCase
}

func NewProfileHandler(
	getMeUC *profile.GetMeUseCase,
	getUC *profile.GetProfileUseCase,
	updateUC *profile.UpdateMeUseCase,
	resetUC *profile.ResetCounterUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		getMeUC:  getMeUC,
		getUC:    getUC,
		updateUC: updateUC,
		resetUC:  resetUC,
	}
}

// GetMe заводит профиль при первом входе по данным из токена.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	p, err := h.getMeUC.Execute(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToMeResponse(p))
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	p, err := h.updateUC.Execute(c.Request.Context(), profile.UpdateMeInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToMeResponse(p))
}

// Get обрабатывает GET /users/:id: публичная карточка без баланса.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID пользователя")
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(p))
}

// ResetCounter обрабатывает POST /profile/counters/:name/reset.
func (h *ProfileHandler) ResetCounter(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	if err := h.resetUC.Execute(c.Request.Context(), userID, c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"reset": c.Param("name")})
}
