package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrFileTooLarge: файл больше допустимого лимита.
var ErrFileTooLarge = errors.New("storage: размер файла превышает лимит")

// LocalStorage хранит сданные работы на диске и отдаёт их по publicBaseURL.
type LocalStorage struct {
	rootPath       string
	publicBaseURL  string
	maxUploadBytes int64
}

func NewLocalStorage(rootPath, publicBaseURL string, maxUploadMB int64) (*LocalStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &LocalStorage{
		rootPath:       rootPath,
		publicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save пишет файл во временный и переименовывает его после проверки размера.
func (s *LocalStorage) Save(ctx context.Context, ownerID uuid.UUID, originalName, contentType string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if size > s.maxUploadBytes {
		return "", ErrFileTooLarge
	}

	fileName := objectName(originalName)
	ownerDir := filepath.Join(s.rootPath, ownerID.String())
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	targetPath := filepath.Join(ownerDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", ErrFileTooLarge
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return s.publicBaseURL + "/" + path.Join(ownerID.String(), fileName), nil
}

// objectName делает имя уникальным и безопасным для файловой системы.
func objectName(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(originalName))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	return name
}
