package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/dsavelev/postline/internal/forms"
	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles the post detail, create and edit pages.
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	imageRepository   repositories.ImageRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	commentRepo repositories.CommentRepository,
	imageRepo repositories.ImageRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		imageRepository:   imageRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo) {
	e.GET("/posts/:id/", h.Detail)
	e.GET("/create/", h.Create, middleware.RequireLogin)
	e.POST("/create/", h.Create, middleware.RequireLogin)
	e.GET("/posts/:id/edit/", h.Edit, middleware.RequireLogin)
	e.POST("/posts/:id/edit/", h.Edit, middleware.RequireLogin)
}

func (h *PostHandler) lookupPost(c echo.Context) (*models.Post, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		return nil, repoError(err, "Post")
	}
	return post, nil
}

// Detail renders one post with its comments and an empty comment form.
func (h *PostHandler) Detail(c echo.Context) error {
	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "post_detail.html", pageContext(c, echo.Map{
		"Title":    truncate(post.Text, 30),
		"Post":     post,
		"Comments": comments,
		"Form":     forms.CommentForm{},
		"Errors":   map[string]string{},
	}))
}

// renderPostForm redisplays the create/edit page, optionally with
// field errors. Always HTTP 200, matching the observed flow.
func (h *PostHandler) renderPostForm(c echo.Context, form forms.PostForm, fieldErrors map[string]string, isEdit bool) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	title := "New post"
	if isEdit {
		title = "Edit post"
	}
	return c.Render(http.StatusOK, "create_post.html", pageContext(c, echo.Map{
		"Title":  title,
		"Form":   form,
		"Errors": fieldErrors,
		"Groups": groups,
		"IsEdit": isEdit,
	}))
}

// resolveGroup turns a submitted group id into a nullable reference,
// reporting a field error for an unknown choice.
func (h *PostHandler) resolveGroup(form forms.PostForm, fieldErrors map[string]string) *uint {
	if form.GroupID == 0 {
		return nil
	}
	group, err := h.groupRepository.GetGroupByID(form.GroupID)
	if err != nil {
		fieldErrors["GroupID"] = "Select a valid choice."
		return nil
	}
	return &group.ID
}

// saveUploadedImage stores an optional multipart image and returns its
// document ID; empty string when nothing was uploaded.
func (h *PostHandler) saveUploadedImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	image := &models.Image{
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Data:        data,
	}
	if err := h.imageRepository.SaveImage(c.Request().Context(), image); err != nil {
		return "", err
	}
	return image.ID, nil
}

// Create serves the new-post form and handles its submission. Success
// redirects to the author's profile.
func (h *PostHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if c.Request().Method == http.MethodGet {
		return h.renderPostForm(c, forms.PostForm{}, map[string]string{}, false)
	}

	var form forms.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, form, forms.FieldErrors(err), false)
	}

	fieldErrors := map[string]string{}
	groupID := h.resolveGroup(form, fieldErrors)
	if len(fieldErrors) > 0 {
		return h.renderPostForm(c, form, fieldErrors, false)
	}

	imageID, err := h.saveUploadedImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
		ImageID:  imageID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// Edit serves the edit form. A caller who is not the author is sent to
// the read-only detail page instead of getting an error, for GET and
// POST alike.
func (h *PostHandler) Edit(c echo.Context) error {
	user := middleware.CurrentUser(c)

	post, err := h.lookupPost(c)
	if err != nil {
		return err
	}

	detailURL := "/posts/" + strconv.FormatUint(uint64(post.ID), 10) + "/"
	if post.AuthorID != user.ID {
		return c.Redirect(http.StatusFound, detailURL)
	}

	if c.Request().Method == http.MethodGet {
		form := forms.PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.GroupID = *post.GroupID
		}
		return h.renderPostForm(c, form, map[string]string{}, true)
	}

	var form forms.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, form, forms.FieldErrors(err), true)
	}

	fieldErrors := map[string]string{}
	groupID := h.resolveGroup(form, fieldErrors)
	if len(fieldErrors) > 0 {
		return h.renderPostForm(c, form, fieldErrors, true)
	}

	imageID, err := h.saveUploadedImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post.Text = form.Text
	post.GroupID = groupID
	if imageID != "" {
		post.ImageID = imageID
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, detailURL)
}
