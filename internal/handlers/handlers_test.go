package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dsavelev/postline/internal/forms"
	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories/inmemory"
	"github.com/dsavelev/postline/web"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// newTestEcho builds an Echo instance with the real renderer and
// validator so handler tests exercise the actual templates.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Renderer = web.NewRenderer()
	e.Validator = forms.NewValidator()
	return e
}

func seedUser(t *testing.T, store *inmemory.Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, store.CreateUser(u))
	return u
}

func seedGroup(t *testing.T, store *inmemory.Store, title, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: title, Slug: slug}
	require.NoError(t, store.CreateGroup(g))
	return g
}

func seedPost(t *testing.T, store *inmemory.Store, author *models.User, text string) *models.Post {
	t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID}
	require.NoError(t, store.CreatePost(p))
	return p
}

// formRequest builds a POST with urlencoded form data.
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// invoke runs a handler directly against a fresh context.
type contextOption func(echo.Context)

func withUser(u *models.User) contextOption {
	return func(c echo.Context) { middleware.SetCurrentUser(c, u) }
}

func withParam(name, value string) contextOption {
	return func(c echo.Context) {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
}

func invoke(e *echo.Echo, req *http.Request, handler echo.HandlerFunc, opts ...contextOption) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for _, opt := range opts {
		opt(c)
	}
	return rec, handler(c)
}
