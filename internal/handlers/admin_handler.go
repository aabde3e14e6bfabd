package handlers

import (
	"net/http"
	"strconv"

	"github.com/dsavelev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the staff-only list/search/filter pages over the
// five entities.
type AdminHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	userRepository    repositories.UserRepository
	commentRepository repositories.CommentRepository
	followRepository  repositories.FollowRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	followRepo repositories.FollowRepository,
) *AdminHandler {
	return &AdminHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		userRepository:    userRepo,
		commentRepository: commentRepo,
		followRepository:  followRepo,
	}
}

// RegisterAdminRoutes registers the admin console routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/", h.Posts)
	g.GET("/groups/", h.Groups)
	g.GET("/users/", h.Users)
	g.GET("/comments/", h.Comments)
	g.GET("/follows/", h.Follows)
}

// Posts lists posts with text search and an optional group filter.
func (h *AdminHandler) Posts(c echo.Context) error {
	query := c.QueryParam("q")
	groupID, _ := strconv.ParseUint(c.QueryParam("group"), 10, 32)

	posts, err := h.postRepository.SearchPosts(query, uint(groupID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "admin_posts.html", pageContext(c, echo.Map{
		"Title":   "Administration: posts",
		"Posts":   posts,
		"Groups":  groups,
		"Query":   query,
		"GroupID": uint(groupID),
	}))
}

func (h *AdminHandler) Groups(c echo.Context) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "admin_groups.html", pageContext(c, echo.Map{
		"Title":  "Administration: groups",
		"Groups": groups,
	}))
}

func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "admin_users.html", pageContext(c, echo.Map{
		"Title": "Administration: users",
		"Users": users,
	}))
}

func (h *AdminHandler) Comments(c echo.Context) error {
	comments, err := h.commentRepository.GetComments()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "admin_comments.html", pageContext(c, echo.Map{
		"Title":    "Administration: comments",
		"Comments": comments,
	}))
}

func (h *AdminHandler) Follows(c echo.Context) error {
	follows, err := h.followRepository.GetFollows()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "admin_follows.html", pageContext(c, echo.Map{
		"Title":   "Administration: follows",
		"Follows": follows,
	}))
}
