package handlers

import (
	"net/http"

	"github.com/dsavelev/postline/internal/cache"
	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/pagination"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the post listing pages: index, group feed,
// author profile and the personalized follow feed.
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	groupRepository  repositories.GroupRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	followRepo repositories.FollowRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		groupRepository:  groupRepo,
		followRepository: followRepo,
	}
}

// RegisterFeedRoutes registers the listing routes. The index page is
// served through the rendered-page cache.
func (h *FeedHandler) RegisterFeedRoutes(e *echo.Echo, pageCache *cache.PageCache) {
	e.GET("/", h.Index, pageCache.Middleware())
	e.GET("/group/:slug/", h.GroupPosts)
	e.GET("/profile/:username/", h.Profile)
	e.GET("/follow/", h.FollowIndex, middleware.RequireLogin)
}

// listPage runs the shared count-then-window query for a filter.
func (h *FeedHandler) listPage(c echo.Context, filter repositories.PostFilter) (pagination.Page, []models.Post, error) {
	total, err := h.postRepository.CountPosts(filter)
	if err != nil {
		return pagination.Page{}, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := pagination.New(int(total), pagination.PostsPerPage, c.QueryParam("page"))
	posts, err := h.postRepository.ListPosts(filter, page.Offset(), page.Limit())
	if err != nil {
		return pagination.Page{}, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return page, posts, nil
}

// Index renders the newest-first listing of every post.
func (h *FeedHandler) Index(c echo.Context) error {
	page, posts, err := h.listPage(c, repositories.PostFilter{})
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "index.html", pageContext(c, echo.Map{
		"Title": "Latest updates",
		"Posts": posts,
		"Page":  page,
	}))
}

// GroupPosts renders the feed of one community, 404 on unknown slug.
func (h *FeedHandler) GroupPosts(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		return repoError(err, "Group")
	}
	page, posts, err := h.listPage(c, repositories.PostFilter{GroupID: group.ID})
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "group_list.html", pageContext(c, echo.Map{
		"Title": group.Title,
		"Group": group,
		"Posts": posts,
		"Page":  page,
	}))
}

// Profile renders an author's page with their posts and a following
// flag for the current viewer.
func (h *FeedHandler) Profile(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return repoError(err, "User")
	}

	page, posts, err := h.listPage(c, repositories.PostFilter{AuthorID: author.ID})
	if err != nil {
		return err
	}

	following := false
	if viewer := middleware.CurrentUser(c); viewer != nil {
		following, err = h.followRepository.IsFollowing(viewer.ID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	followerCount, err := h.followRepository.GetFollowersCount(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "profile.html", pageContext(c, echo.Map{
		"Title":         "Posts by " + author.FullName(),
		"Author":        author,
		"Posts":         posts,
		"Page":          page,
		"PostCount":     page.TotalItems,
		"FollowerCount": followerCount,
		"Following":     following,
	}))
}

// FollowIndex renders posts by the authors the current user follows.
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	user := middleware.CurrentUser(c)

	authorIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if authorIDs == nil {
		authorIDs = []uint{}
	}

	page, posts, err := h.listPage(c, repositories.PostFilter{AuthorIDs: authorIDs})
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "follow.html", pageContext(c, echo.Map{
		"Title": "Favorite authors",
		"Posts": posts,
		"Page":  page,
	}))
}
