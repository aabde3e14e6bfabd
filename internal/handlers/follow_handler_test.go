package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dsavelev/postline/internal/repositories/inmemory"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followReq(t *testing.T, e *echo.Echo, h echo.HandlerFunc, user, target string, store *inmemory.Store) *httptest.ResponseRecorder {
	t.Helper()
	u, err := store.GetUserByUsername(user)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/profile/"+target+"/follow/", nil)
	rec, err := invoke(e, req, h, withUser(u), withParam("username", target))
	require.NoError(t, err)
	return rec
}

func TestFollowTwiceLeavesSingleRow(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewFollowHandler(store, store)
	seedUser(t, store, "leo")
	seedUser(t, store, "anna")

	rec := followReq(t, e, h.ProfileFollow, "leo", "anna", store)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/anna/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, store.FollowCount())

	// Second follow is a silent no-op with the same redirect.
	rec = followReq(t, e, h.ProfileFollow, "leo", "anna", store)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/anna/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, store.FollowCount())
}

func TestSelfFollowIsNoop(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewFollowHandler(store, store)
	seedUser(t, store, "leo")

	rec := followReq(t, e, h.ProfileFollow, "leo", "leo", store)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/leo/", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, store.FollowCount())
}

func TestUnfollowRedirectsToIndex(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewFollowHandler(store, store)
	seedUser(t, store, "leo")
	seedUser(t, store, "anna")

	followReq(t, e, h.ProfileFollow, "leo", "anna", store)
	require.Equal(t, 1, store.FollowCount())

	rec := followReq(t, e, h.ProfileUnfollow, "leo", "anna", store)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, store.FollowCount())
}

func TestUnfollowNonFollowedIsNoop(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewFollowHandler(store, store)
	seedUser(t, store, "leo")
	seedUser(t, store, "anna")

	rec := followReq(t, e, h.ProfileUnfollow, "leo", "anna", store)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Zero(t, store.FollowCount())
}

func TestFollowUnknownAuthorIs404(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewFollowHandler(store, store)
	leo := seedUser(t, store, "leo")

	req := httptest.NewRequest(http.MethodGet, "/profile/ghost/follow/", nil)
	_, err := invoke(e, req, h.ProfileFollow, withUser(leo), withParam("username", "ghost"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
