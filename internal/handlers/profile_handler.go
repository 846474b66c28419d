package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/quillhub/quill/backend/internal/pagination"
	"github.com/quillhub/quill/backend/internal/repositories"
)

// ProfileHandler serves author profile pages
type ProfileHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
	pageSize         int
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, followRepo repositories.FollowRepository, pageSize int) *ProfileHandler {
	return &ProfileHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
		pageSize:         pageSize,
	}
}

// RegisterProfileRoutes registers the profile route
func (h *ProfileHandler) RegisterProfileRoutes(e *echo.Echo, optionalAuth echo.MiddlewareFunc) {
	e.GET("/:username/", h.Profile, optionalAuth)
}

// Profile returns an author's posts, follower counts and, for an
// authenticated viewer, whether the viewer follows the author.
func (h *ProfileHandler) Profile(c echo.Context) error {
	profileUser, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.postRepository.CountPostsByAuthorID(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Resolve(pagination.ParsePageParam(c.QueryParam("page")), total, h.pageSize)
	posts, err := h.postRepository.GetPostsByAuthorID(profileUser.ID, page.Offset(), page.Limit())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following := false
	if viewerID := getUserIDFromContext(c); viewerID != 0 {
		following, err = h.followRepository.IsFollowing(viewerID, profileUser.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	followers, err := h.followRepository.GetFollowersCount(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingCount, err := h.followRepository.GetFollowingCount(profileUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile_user":    profileUser.ToCompact(),
		"posts":           posts,
		"page":            page,
		"following":       following,
		"followers_count": followers,
		"following_count": followingCount,
	})
}
