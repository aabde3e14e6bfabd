package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/dsavelev/postline/internal/repositories"
	"github.com/dsavelev/postline/internal/repositories/inmemory"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostHandler(store *inmemory.Store) *PostHandler {
	return NewPostHandler(store, store, store, store)
}

func TestCreatePostOwnedBySubmitterAndRedirectsToProfile(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)
	leo := seedUser(t, store, "leo")

	req := formRequest("/create/", url.Values{"text": {"my first post"}})
	rec, err := invoke(e, req, h.Create, withUser(leo))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/leo/", rec.Header().Get(echo.HeaderLocation))

	posts, err := store.ListPosts(repositories.PostFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "my first post", posts[0].Text)
	assert.Equal(t, leo.ID, posts[0].AuthorID)
}

func TestCreatePostEmptyTextRedisplaysFormWithoutSaving(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)
	leo := seedUser(t, store, "leo")

	req := formRequest("/create/", url.Values{"text": {""}})
	rec, err := invoke(e, req, h.Create, withUser(leo))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")

	count, err := store.CountPosts(repositories.PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreatePostWithGroupAndUnknownGroup(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)
	leo := seedUser(t, store, "leo")

	group := seedGroup(t, store, "Cats", "cats")

	req := formRequest("/create/", url.Values{
		"text":  {"grouped"},
		"group": {strconv.FormatUint(uint64(group.ID), 10)},
	})
	rec, err := invoke(e, req, h.Create, withUser(leo))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)

	posts, err := store.ListPosts(repositories.PostFilter{GroupID: group.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	// Unknown group id is a field error, not a save.
	req = formRequest("/create/", url.Values{"text": {"bad group"}, "group": {"999"}})
	rec, err = invoke(e, req, h.Create, withUser(leo))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select a valid choice.")

	count, err := store.CountPosts(repositories.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEditByNonAuthorNeverChangesPost(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)
	leo := seedUser(t, store, "leo")
	anna := seedUser(t, store, "anna")
	post := seedPost(t, store, leo, "original text")

	id := strconv.FormatUint(uint64(post.ID), 10)

	// GET: redirected to the read-only detail page.
	req := httptest.NewRequest(http.MethodGet, "/posts/"+id+"/edit/", nil)
	rec, err := invoke(e, req, h.Edit, withUser(anna), withParam("id", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/"+id+"/", rec.Header().Get(echo.HeaderLocation))

	// POST: same redirect, stored fields untouched.
	req = formRequest("/posts/"+id+"/edit/", url.Values{"text": {"hijacked"}})
	rec, err = invoke(e, req, h.Edit, withUser(anna), withParam("id", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)

	got, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original text", got.Text)
}

func TestEditByAuthorUpdatesAndRedirectsToDetail(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)
	leo := seedUser(t, store, "leo")
	post := seedPost(t, store, leo, "original text")

	id := strconv.FormatUint(uint64(post.ID), 10)
	req := formRequest("/posts/"+id+"/edit/", url.Values{"text": {"updated text"}})
	rec, err := invoke(e, req, h.Edit, withUser(leo), withParam("id", id))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/"+id+"/", rec.Header().Get(echo.HeaderLocation))

	got, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated text", got.Text)
}

func TestEditValidationFailureShowsEditMode(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)
	leo := seedUser(t, store, "leo")
	post := seedPost(t, store, leo, "original text")

	id := strconv.FormatUint(uint64(post.ID), 10)
	req := formRequest("/posts/"+id+"/edit/", url.Values{"text": {""}})
	rec, err := invoke(e, req, h.Edit, withUser(leo), withParam("id", id))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Edit post")
	assert.Contains(t, rec.Body.String(), "This field is required.")

	got, err := store.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original text", got.Text)
}

func TestDetailUnknownPostIs404(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := newPostHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/posts/42/", nil)
	_, err := invoke(e, req, h.Detail, withParam("id", "42"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
