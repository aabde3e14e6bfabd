package handlers

import (
	"net/http"
	"strconv"

	"github.com/dsavelev/postline/internal/forms"
	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment submission on the post detail page.
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo) {
	e.GET("/posts/:id/comment/", h.AddComment, middleware.RequireLogin)
	e.POST("/posts/:id/comment/", h.AddComment, middleware.RequireLogin)
}

// AddComment validates the submitted text and persists a comment tied
// to the post and the current user. A failed validation redisplays the
// detail page with field errors and persists nothing.
func (h *CommentHandler) AddComment(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		return repoError(err, "Post")
	}

	detailURL := "/posts/" + strconv.FormatUint(uint64(post.ID), 10) + "/"
	if c.Request().Method == http.MethodGet {
		return c.Redirect(http.StatusFound, detailURL)
	}

	var form forms.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		comments, cerr := h.commentRepository.GetCommentsByPostID(post.ID)
		if cerr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, cerr.Error())
		}
		return c.Render(http.StatusOK, "post_detail.html", pageContext(c, echo.Map{
			"Title":    truncate(post.Text, 30),
			"Post":     post,
			"Comments": comments,
			"Form":     form,
			"Errors":   forms.FieldErrors(err),
		}))
	}

	comment := &models.Comment{
		Text:     form.Text,
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, detailURL)
}
