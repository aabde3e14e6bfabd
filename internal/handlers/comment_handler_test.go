package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/dsavelev/postline/internal/repositories/inmemory"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentPersistsAndRedirectsToDetail(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewCommentHandler(store, store)
	leo := seedUser(t, store, "leo")
	anna := seedUser(t, store, "anna")
	post := seedPost(t, store, leo, "a post")

	id := strconv.FormatUint(uint64(post.ID), 10)
	req := formRequest("/posts/"+id+"/comment/", url.Values{"text": {"nice one"}})
	rec, err := invoke(e, req, h.AddComment, withUser(anna), withParam("id", id))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/"+id+"/", rec.Header().Get(echo.HeaderLocation))

	comments, err := store.GetCommentsByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Text)
	assert.Equal(t, anna.ID, comments[0].AuthorID)
	assert.Equal(t, post.ID, comments[0].PostID)
}

func TestAddCommentEmptyTextCreatesNothing(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewCommentHandler(store, store)
	leo := seedUser(t, store, "leo")
	post := seedPost(t, store, leo, "a post")

	id := strconv.FormatUint(uint64(post.ID), 10)
	req := formRequest("/posts/"+id+"/comment/", url.Values{"text": {""}})
	rec, err := invoke(e, req, h.AddComment, withUser(leo), withParam("id", id))
	require.NoError(t, err)

	// Redisplayed detail page with an inline error, nothing persisted.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")
	assert.Zero(t, store.CommentCount())
}

func TestAddCommentUnknownPostIs404(t *testing.T) {
	e := newTestEcho(t)
	store := inmemory.New()
	h := NewCommentHandler(store, store)
	leo := seedUser(t, store, "leo")

	req := formRequest("/posts/7/comment/", url.Values{"text": {"hello"}})
	_, err := invoke(e, req, h.AddComment, withUser(leo), withParam("id", "7"))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
