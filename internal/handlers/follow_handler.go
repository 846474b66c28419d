package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/quillhub/quill/backend/internal/cache"
	"github.com/quillhub/quill/backend/internal/metrics"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow requests. A follow edge is
// either absent or present; both operations are idempotent and always
// end on the target's profile page.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	followCache      *cache.FollowSetCache
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, followCache *cache.FollowSetCache) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		followCache:      followCache,
	}
}

// RegisterFollowRoutes registers the follow routes
func (h *FollowHandler) RegisterFollowRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/:username/follow/", h.Follow, requireAuth)
	e.GET("/:username/unfollow/", h.Unfollow, requireAuth)
}

// Follow creates the edge unless the target is the caller or the edge
// already exists, then redirects to the target's profile.
func (h *FollowHandler) Follow(c echo.Context) error {
	followerID := getUserIDFromContext(c)

	target, err := h.loadTarget(c)
	if err != nil {
		return err
	}

	if followerID != target.ID {
		follow := &models.Follow{
			UserID:   followerID,
			AuthorID: target.ID,
		}
		// duplicate edges are swallowed by the store
		if err := h.followRepository.CreateFollow(follow); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		metrics.FollowsCreated.Inc()
		h.followCache.Invalidate(c.Request().Context(), followerID)
	}

	return c.Redirect(http.StatusFound, "/"+target.Username+"/")
}

// Unfollow deletes the edge if present, then redirects to the
// target's profile. A missing edge is a no-op.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	followerID := getUserIDFromContext(c)

	target, err := h.loadTarget(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(followerID, target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.FollowsDeleted.Inc()
	h.followCache.Invalidate(c.Request().Context(), followerID)

	return c.Redirect(http.StatusFound, "/"+target.Username+"/")
}

func (h *FollowHandler) loadTarget(c echo.Context) (*models.User, error) {
	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return target, nil
}
