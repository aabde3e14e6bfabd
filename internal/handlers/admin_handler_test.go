package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories/inmemory"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminHandler(store *inmemory.Store) *AdminHandler {
	return NewAdminHandler(store, store, store, store, store)
}

func TestAdminPostsSearchAndGroupFilter(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newAdminHandler(store)
	staff := seedUser(t, store, "admin")
	staff.IsStaff = true

	group := seedGroup(t, store, "Cats", "cats")
	require.NoError(t, store.CreatePost(&models.Post{Text: "cats are great", AuthorID: staff.ID, GroupID: &group.ID}))
	require.NoError(t, store.CreatePost(&models.Post{Text: "dogs are fine", AuthorID: staff.ID}))

	req := httptest.NewRequest(http.MethodGet, "/admin/?q=cats", nil)
	rec, err := invoke(e, req, h.Posts, withUser(staff))
	require.NoError(t, err)
	body := rec.Body.String()
	assert.Contains(t, body, "cats are great")
	assert.NotContains(t, body, "dogs are fine")

	req = httptest.NewRequest(http.MethodGet, "/admin/?group="+strconv.FormatUint(uint64(group.ID), 10), nil)
	rec, err = invoke(e, req, h.Posts, withUser(staff))
	require.NoError(t, err)
	body = rec.Body.String()
	assert.Contains(t, body, "cats are great")
	assert.NotContains(t, body, "dogs are fine")
}

func TestAdminRequiresStaff(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newAdminHandler(store)
	h.RegisterAdminRoutes(e.Group("/admin", middleware.RequireStaff))

	plain := seedUser(t, store, "leo")

	// Anonymous callers are sent to login.
	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "/auth/login/?next=")

	// Authenticated non-staff callers get an explicit 403.
	e.GET("/adminprobe", func(c echo.Context) error { return nil }, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetCurrentUser(c, plain)
			return middleware.RequireStaff(next)(c)
		}
	})
	req = httptest.NewRequest(http.MethodGet, "/adminprobe", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMediaServesStoredImage(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewMediaHandler(store)

	img := &models.Image{Filename: "cat.png", ContentType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}
	require.NoError(t, store.SaveImage(context.Background(), img))

	req := httptest.NewRequest(http.MethodGet, "/media/"+img.ID, nil)
	rec, err := invoke(e, req, h.GetImage, withParam("id", img.ID))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, img.Data, rec.Body.Bytes())
}

func TestMediaUnknownImageIs404(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewMediaHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/media/ghost", nil)
	_, err := invoke(e, req, h.GetImage, withParam("id", "ghost"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
