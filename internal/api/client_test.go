package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/backoffice/internal/models"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sessions":
			var in models.LoginInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "admin@loja.local", in.Email)
			_, _ = w.Write([]byte(`{"token":"abc","user":{"id":"u1","email":"admin@loja.local"}}`))
		case "/categories":
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			_, _ = w.Write([]byte(`[{"id":"c1","name":"Camisetas","active":true}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	session, err := c.Login(context.Background(), "admin@loja.local", "admin")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID)

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Camisetas", cats[0].Name)
}

func TestStructuredErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Categoria já existe"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateCategory(context.Background(), models.CategoryInput{Name: "Camisetas"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Categoria já existe", MessageOf(err, "generic"))
}

func TestTransportErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Products(context.Background())
	require.Error(t, err)

	var tErr *TransportError
	assert.True(t, errors.As(err, &tErr))
	assert.Equal(t, "generic", MessageOf(err, "generic"))
}

func TestClosedServerIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Clients(context.Background())
	var tErr *TransportError
	assert.True(t, errors.As(err, &tErr))
}

func TestPathsAndMethods(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)
	_, err := c.SetProductActive(ctx, "p1", false)
	require.NoError(t, err)
	_, err = c.DeleteSize(ctx, "s1")
	require.NoError(t, err)
	_, err = c.Orders(ctx, SearchAll, "")
	require.NoError(t, err)
	_, err = c.Orders(ctx, SearchClient, "cl-9")
	require.NoError(t, err)
	msg, err := c.Upload(ctx, http.MethodPut, CategoryThumbnailPath("c1"), strings.NewReader(""), "multipart/form-data; boundary=x")
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Message)
	_, err = c.Upload(ctx, http.MethodPut, UpdateCategoryThumbnailPath("c1"), strings.NewReader(""), "multipart/form-data; boundary=x")
	require.NoError(t, err)

	assert.Equal(t, []call{
		{http.MethodPut, "/products/active/p1"},
		{http.MethodDelete, "/sizes/s1"},
		{http.MethodGet, "/orders/all/all"},
		{http.MethodGet, "/orders/client/cl-9"},
		{http.MethodPut, "/thumbnailCateogry/c1"},
		{http.MethodPut, "/updateThumbnailCategory/c1"},
	}, calls)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&Error{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(errors.New("x")))
}
