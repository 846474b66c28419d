package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillhub/quill/backend/internal/cache"
	"github.com/quillhub/quill/backend/internal/middleware"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/pagination"
	"github.com/quillhub/quill/backend/internal/repositories"
)

// FeedHandler serves the global feed and the follow feed
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
	followCache      *cache.FollowSetCache
	pageSize         int
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, followRepo repositories.FollowRepository, followCache *cache.FollowSetCache, pageSize int) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		followRepository: followRepo,
		followCache:      followCache,
		pageSize:         pageSize,
	}
}

// RegisterFeedRoutes registers the feed routes
func (h *FeedHandler) RegisterFeedRoutes(e *echo.Echo, optionalAuth, requireAuth echo.MiddlewareFunc) {
	e.GET("/", h.Index, optionalAuth)
	e.GET("/follow/", h.FollowIndex, requireAuth)
}

// Index returns the global feed, newest first, paginated
func (h *FeedHandler) Index(c echo.Context) error {
	total, err := h.postRepository.CountAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Resolve(pagination.ParsePageParam(c.QueryParam("page")), total, h.pageSize)
	posts, err := h.postRepository.GetAllPosts(page.Offset(), page.Limit())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "page": page})
}

// FollowIndex returns posts by the authors the viewer follows
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		// routing guarantees RequireAuth ran; this is a hard guard
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	}

	authorIDs, err := h.followedAuthorIDs(c, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.postRepository.CountPostsByAuthorIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Resolve(pagination.ParsePageParam(c.QueryParam("page")), total, h.pageSize)
	var posts []models.Post
	if total > 0 {
		posts, err = h.postRepository.GetPostsByAuthorIDs(authorIDs, page.Offset(), page.Limit())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else {
		posts = []models.Post{}
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "page": page})
}

// followedAuthorIDs consults the cache before hitting the store
func (h *FeedHandler) followedAuthorIDs(c echo.Context, viewerID uint) ([]uint, error) {
	ctx := c.Request().Context()
	if ids, ok := h.followCache.Get(ctx, viewerID); ok {
		return ids, nil
	}
	ids, err := h.followRepository.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	h.followCache.Set(ctx, viewerID, ids)
	return ids, nil
}
