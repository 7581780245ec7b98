package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/upload"
)

type recordingSender struct {
	paths []string
}

func (s *recordingSender) Upload(ctx context.Context, method, path string, body io.Reader, contentType string) (models.Message, error) {
	s.paths = append(s.paths, path)
	return models.Message{Message: "Imagem alterada com sucesso"}, nil
}

func TestAttachWritesPreviewAndUploads(t *testing.T) {
	file := filepath.Join(t.TempDir(), "thumb.png")
	require.NoError(t, os.WriteFile(file, []byte("png"), 0o600))

	sender := &recordingSender{}
	u := upload.New(sender, notify.Discard, 0)

	var previewDuringSend string
	err := attach(u, file, func() lrm.Result {
		previewDuringSend, _ = u.Preview()
		return u.Upload(context.Background(), upload.Target{Method: "PUT", Path: "/updateThumbnailCategory/c1"}, nil)
	})
	require.NoError(t, err)

	require.NotEmpty(t, previewDuringSend)
	_, statErr := os.Stat(previewDuringSend)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	assert.Equal(t, []string{"/updateThumbnailCategory/c1"}, sender.paths)
	assert.False(t, u.CanUpload())
}

func TestAttachRefusesOversizedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(file, make([]byte, 2048), 0o600))

	sender := &recordingSender{}
	u := upload.New(sender, notify.Discard, 1024)

	err := attach(u, file, func() lrm.Result {
		return u.Upload(context.Background(), upload.Target{Method: "PUT", Path: "/thumbnailCateogry/c1"}, nil)
	})
	assert.Error(t, err)
	assert.Empty(t, sender.paths)
}
