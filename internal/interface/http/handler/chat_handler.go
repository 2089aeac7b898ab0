package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/chat"
)

type ChatHandler struct {
	listRoomsUC    *chat.ListUnifiedRoomsUseCase
	startUC        *chat.StartDirectChatUseCase
	listMessagesUC *chat.ListMessagesUseCase
	sendUC         *chat.SendMessageUseCase
	sendUnifiedUC  *chat.SendToUnifiedUseCase
	markReadUC     *chat.MarkReadUseCase
}

func NewChatHandler(
	listRoomsUC *chat.ListUnifiedRoomsUseCase,
	startUC *chat.StartDirectChatUseCase,
	listMessagesUC *chat.ListMessagesUseCase,
	sendUC *chat.SendMessageUseCase,
	sendUnifiedUC *chat.SendToUnifiedUseCase,
	markReadUC *chat.MarkReadUseCase,
) *ChatHandler {
	return &ChatHandler{
		listRoomsUC:    listRoomsUC,
		startUC:        startUC,
		listMessagesUC: listMessagesUC,
		sendUC:         sendUC,
		sendUnifiedUC:  sendUnifiedUC,
		markReadUC:     markReadUC,
	}
}

// ListRooms обрабатывает GET /chats: по одной строке на собеседника.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	rooms, err := h.listRoomsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUnifiedChatResponses(rooms, userID))
}

func (h *ChatHandler) Start(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}
	otherID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "некорректный ID пользователя")
		return
	}

	room, err := h.startUC.Execute(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToChatRoomResponse(room, userID))
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	roomID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID чата")
		return
	}
	limit, offset := pagination(c, 50)

	messages, err := h.listMessagesUC.Execute(c.Request.Context(), roomID, userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToMessageResponses(messages))
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	roomID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID чата")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "сообщение не может быть пустым")
		return
	}

	msg, err := h.sendUC.Execute(c.Request.Context(), roomID, userID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMessageResponse(msg))
}

// SendUnified обрабатывает POST /chats/unified/:key/messages. Ключом служит пара участников,
// request_id выбирает проектный чат.
func (h *ChatHandler) SendUnified(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "сообщение не может быть пустым")
		return
	}

	var requestID *uuid.UUID
	if req.RequestID != nil && *req.RequestID != "" {
		id, err := uuid.Parse(*req.RequestID)
		if err != nil {
			response.BadRequest(c, "некорректный ID заявки")
			return
		}
		requestID = &id
	}

	msg, err := h.sendUnifiedUC.Execute(c.Request.Context(), chat.SendToUnifiedInput{
		UnifiedID: c.Param("key"),
		SenderID:  userID,
		RequestID: requestID,
		Text:      req.Text,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMessageResponse(msg))
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}
	roomID, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный ID чата")
		return
	}

	if err := h.markReadUC.Execute(c.Request.Context(), roomID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"read": true})
}
