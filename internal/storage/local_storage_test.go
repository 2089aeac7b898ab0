package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://localhost:8080/uploads/", 1)
	require.NoError(t, err)

	owner := uuid.New()
	url, err := s.Save(context.Background(), owner, "../../wedding shot.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	require.NoError(t, err)

	prefix := "http://localhost:8080/uploads/" + owner.String() + "/"
	require.True(t, strings.HasPrefix(url, prefix), url)
	assert.True(t, strings.HasSuffix(url, "_wedding_shot.jpg"))

	data, err := os.ReadFile(filepath.Join(root, owner.String(), strings.TrimPrefix(url, prefix)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLocalStorage_RejectsOversized(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/uploads", 1)
	require.NoError(t, err)

	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	_, err = s.Save(context.Background(), uuid.New(), "big.raw", "", big, -1)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, _ := os.ReadDir(root)
	for _, e := range entries {
		files, _ := os.ReadDir(filepath.Join(root, e.Name()))
		assert.Empty(t, files)
	}
}
