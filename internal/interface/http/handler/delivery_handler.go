package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/request"
)

const maxDeliveryFiles = 20

// Фотограф сдаёт фотографии или архив с ними.
var allowedDeliveryTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/heif":      true,
	"image/tiff":      true,
	"application/zip": true,
}

type DeliveryHandler struct {
	deliverUC *request.DeliverWorkUseCase
	storage   gateway.FileStorage
	maxBytes  int64
}

func NewDeliveryHandler(deliverUC *request.DeliverWorkUseCase, storage gateway.FileStorage, maxUploadMB int64) *DeliveryHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 25
	}
	return &DeliveryHandler{deliverUC: deliverUC, storage: storage, maxBytes: maxUploadMB << 20}
}

// Deliver обрабатывает POST /requests/:id/deliver (multipart, поле files).
func (h *DeliveryHandler) Deliver(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "ожидается multipart/form-data с полем files")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "нужно приложить хотя бы один файл")
		return
	}
	if len(files) > maxDeliveryFiles {
		response.BadRequest(c, fmt.Sprintf("не больше %d файлов за раз", maxDeliveryFiles))
		return
	}

	if err := h.deliverUC.Authorize(c.Request.Context(), requestID, userID); err != nil {
		response.Error(c, err)
		return
	}

	// Сначала проверяем все файлы, чтобы отклонённая сдача ничего не оставила в хранилище.
	mimes := make([]string, len(files))
	for i, fh := range files {
		mime, err := sniffDelivery(fh, h.maxBytes)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		mimes[i] = mime
	}

	urls := make([]string, 0, len(files))
	for i, fh := range files {
		url, err := h.saveFile(c, userID, fh, mimes[i])
		if err != nil {
			response.Error(c, err)
			return
		}
		urls = append(urls, url)
	}

	updated, err := h.deliverUC.Execute(c.Request.Context(), request.DeliverWorkInput{
		RequestID:      requestID,
		PhotographerID: userID,
		Files:          urls,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.DeliveryResponse{
		Request: dto.ToRequestResponse(updated),
		Files:   urls,
	})
}

// sniffDelivery проверяет размер и реальный тип файла по магическим байтам.
func sniffDelivery(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if fh.Size == 0 {
		return "", fmt.Errorf("файл %s пустой", fh.Filename)
	}
	if fh.Size > maxBytes {
		return "", fmt.Errorf("файл %s слишком большой", fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("не удалось открыть файл %s", fh.Filename)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("не удалось прочитать файл %s", fh.Filename)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !allowedDeliveryTypes[kind.MIME.Value] {
		return "", fmt.Errorf("файл %s: разрешены только изображения и zip-архивы", fh.Filename)
	}
	return kind.MIME.Value, nil
}

func (h *DeliveryHandler) saveFile(c *gin.Context, ownerID uuid.UUID, fh *multipart.FileHeader, mime string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.storage.Save(c.Request.Context(), ownerID, fh.Filename, mime, src, fh.Size)
}
