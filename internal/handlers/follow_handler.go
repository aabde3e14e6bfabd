package handlers

import (
	"net/http"

	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles the follow/unfollow toggles.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(e *echo.Echo) {
	e.GET("/profile/:username/follow/", h.ProfileFollow, middleware.RequireLogin)
	e.GET("/profile/:username/unfollow/", h.ProfileUnfollow, middleware.RequireLogin)
}

// ProfileFollow subscribes the current user to an author. Following
// yourself or an author you already follow is a silent no-op that
// redirects to the profile.
func (h *FollowHandler) ProfileFollow(c echo.Context) error {
	user := middleware.CurrentUser(c)

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return repoError(err, "User")
	}

	profileURL := "/profile/" + author.Username + "/"
	if user.ID == author.ID {
		return c.Redirect(http.StatusFound, profileURL)
	}

	following, err := h.followRepository.IsFollowing(user.ID, author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return c.Redirect(http.StatusFound, profileURL)
	}

	follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, profileURL)
}

// ProfileUnfollow removes the subscription if present and redirects to
// the index page. The redirect target differs from ProfileFollow on
// purpose; it matches the long-observed behavior of the platform.
func (h *FollowHandler) ProfileUnfollow(c echo.Context) error {
	user := middleware.CurrentUser(c)

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return repoError(err, "User")
	}

	if err := h.followRepository.DeleteFollow(user.ID, author.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/")
}
