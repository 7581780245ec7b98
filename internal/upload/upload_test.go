package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/status"
)

func kb(n float64) []byte {
	return make([]byte, int(n*1024))
}

func TestSizeLimit(t *testing.T) {
	tray := notify.NewTray(time.Minute)
	u := New(nil, tray, 0)

	assert.False(t, u.Select("big.png", kb(512.1)))
	assert.False(t, u.CanUpload())
	notes := tray.All()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.Warning, notes[0].Level)
	assert.Equal(t, "Arquivo muito grande insira um arquivo de até 500kb", notes[0].Message)

	assert.False(t, u.Select("edge.png", kb(500)))

	assert.True(t, u.Select("ok.png", kb(499)))
	assert.True(t, u.CanUpload())
	assert.Len(t, tray.All(), 2)

	f, ok := u.Selection()
	require.True(t, ok)
	assert.Equal(t, "ok.png", f.Name)
	assert.Equal(t, 499.0, f.SizeKB())
}

func TestPreviewRevokedOnReplaceAndClear(t *testing.T) {
	u := New(nil, nil, 0)
	_, err := u.Preview()
	assert.ErrorIs(t, err, ErrNoFile)

	u.Select("a.png", []byte("first"))
	first, err := u.Preview()
	require.NoError(t, err)
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	again, err := u.Preview()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	u.Select("b.png", []byte("second"))
	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err))

	second, err := u.Preview()
	require.NoError(t, err)
	u.Clear()
	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))
	_, ok := u.Selection()
	assert.False(t, ok)
}

func TestUploadSendsMultipartWithMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/banners", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "index", r.FormValue("origin"))
		assert.Equal(t, "https://loja.test/promo", r.FormValue("redirect"))

		f, hdr, err := r.FormFile(FileField)
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "banner.jpg", hdr.Filename)
		assert.Equal(t, "jpeg-bytes", string(body))

		_, _ = w.Write([]byte(`{"message":"Banner salvo com sucesso"}`))
	}))
	defer srv.Close()

	tray := notify.NewTray(time.Minute)
	u := New(api.New(srv.URL), tray, 0)
	u.Select("banner.jpg", []byte("jpeg-bytes"))

	res := u.Upload(context.Background(),
		Target{Method: http.MethodPost, Path: api.BannerPath, CloseOnSuccess: true},
		models.BannerMeta{Origin: status.OriginIndex, Redirect: "https://loja.test/promo"})

	require.True(t, res.OK, "%v", res.Err)
	assert.True(t, res.CloseModal)
	assert.Equal(t, "Banner salvo com sucesso", res.Message)
	assert.False(t, u.CanUpload())
	_, ok := u.Selection()
	assert.False(t, ok)
	assert.Equal(t, notify.Success, tray.All()[0].Level)
}

func TestUploadFailureKeepsSelection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Formato de imagem inválido"}`))
	}))
	defer srv.Close()

	tray := notify.NewTray(time.Minute)
	u := New(api.New(srv.URL), tray, 0)
	u.Select("thumb.gif", []byte("gif"))

	res := u.Upload(context.Background(), Target{Method: http.MethodPut, Path: api.CategoryThumbnailPath("c1")}, nil)

	assert.False(t, res.OK)
	assert.Equal(t, lrm.KindAPI, res.Kind)
	assert.True(t, u.CanUpload())
	f, ok := u.Selection()
	require.True(t, ok)
	assert.Equal(t, "thumb.gif", f.Name)
	assert.Equal(t, "Formato de imagem inválido", tray.All()[0].Message)
}

func TestUploadRejectsMissingMetadata(t *testing.T) {
	u := New(nil, notify.NewTray(time.Minute), 0)
	u.Select("m.png", []byte("png"))

	res := u.Upload(context.Background(), Target{Method: http.MethodPost, Path: api.ModelingPath("p1")}, models.ModelingMeta{Title: "Gola V"})
	assert.False(t, res.OK)
	assert.Equal(t, lrm.KindValidation, res.Kind)
	assert.True(t, u.CanUpload())
}

func TestUploadWithoutSelection(t *testing.T) {
	u := New(nil, nil, 0)
	res := u.Upload(context.Background(), Target{Method: http.MethodPut, Path: "/x"}, nil)
	assert.ErrorIs(t, res.Err, ErrNoFile)
	assert.Equal(t, lrm.KindValidation, res.Kind)
}

type senderFunc func(ctx context.Context, method, path string, body io.Reader, contentType string) (models.Message, error)

func (f senderFunc) Upload(ctx context.Context, method, path string, body io.Reader, contentType string) (models.Message, error) {
	return f(ctx, method, path, body, contentType)
}

func TestUploadKeepsFileSelectedWhileSending(t *testing.T) {
	var u *Uploader
	calls := 0
	u = New(senderFunc(func(ctx context.Context, method, path string, body io.Reader, contentType string) (models.Message, error) {
		calls++
		if calls == 1 {
			u.Select("segunda.png", kb(2))
		}
		return models.Message{Message: "Imagem cadastrada com sucesso"}, nil
	}), notify.Discard, 0)

	require.True(t, u.Select("primeira.png", kb(1)))
	res := u.Upload(context.Background(), Target{Method: http.MethodPost, Path: api.CatalogPath("p1")}, nil)
	require.True(t, res.OK)

	f, ok := u.Selection()
	require.True(t, ok)
	assert.Equal(t, "segunda.png", f.Name)
	assert.True(t, u.CanUpload())

	res = u.Upload(context.Background(), Target{Method: http.MethodPost, Path: api.CatalogPath("p1")}, nil)
	require.True(t, res.OK)
	_, ok = u.Selection()
	assert.False(t, ok)
}
