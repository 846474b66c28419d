package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/pagination"
	"github.com/quillhub/quill/backend/internal/repositories"
	"github.com/quillhub/quill/backend/validators"
)

// GroupHandler serves group listings and per-group feeds
type GroupHandler struct {
	groupRepository repositories.GroupRepository
	postRepository  repositories.PostRepository
	pageSize        int
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, postRepo repositories.PostRepository, pageSize int) *GroupHandler {
	return &GroupHandler{
		groupRepository: groupRepo,
		postRepository:  postRepo,
		pageSize:        pageSize,
	}
}

// RegisterGroupRoutes registers the group routes
func (h *GroupHandler) RegisterGroupRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/group/", h.GroupIndex)
	e.GET("/group/:slug/", h.GroupPosts)
	e.POST("/group/", h.CreateGroup, requireAuth)
}

// GroupIndex lists groups ordered by primary key, paginated
func (h *GroupHandler) GroupIndex(c echo.Context) error {
	total, err := h.groupRepository.CountGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Resolve(pagination.ParsePageParam(c.QueryParam("page")), total, h.pageSize)
	groups, err := h.groupRepository.GetGroups(page.Offset(), page.Limit())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"groups": groups, "page": page})
}

// GroupPosts lists the posts filed under one group, 404 on unknown slug
func (h *GroupHandler) GroupPosts(c echo.Context) error {
	slug := c.Param("slug")

	group, err := h.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.postRepository.CountPostsByGroupID(group.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Resolve(pagination.ParsePageParam(c.QueryParam("page")), total, h.pageSize)
	posts, err := h.postRepository.GetPostsByGroupID(group.ID, page.Offset(), page.Limit())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"group": group, "posts": posts, "page": page})
}

// CreateGroup adds a new collection. Duplicate titles or slugs are
// rejected by the store's unique indexes.
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if errs := validators.Check(req); errs != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": errs})
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.groupRepository.CreateGroup(group); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "A group with this title or slug already exists")
	}

	return c.Redirect(http.StatusFound, "/group/"+group.Slug+"/")
}
