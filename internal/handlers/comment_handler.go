package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/quillhub/quill/backend/internal/metrics"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/repositories"
	"github.com/quillhub/quill/backend/validators"
)

// CommentHandler handles comment creation
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

// RegisterCommentRoutes registers the comment routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/:username/:post_id/comment", h.AddComment, requireAuth)
}

// AddComment inserts a comment on an existing post and redirects to
// the detail page. Validation failure re-renders the detail data
// without persisting; the failed input is not preserved.
func (h *CommentHandler) AddComment(c echo.Context) error {
	authorID := getUserIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByAuthorUsernameAndID(c.Param("username"), uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if errs := validators.Check(form); errs != nil {
		comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"post":     post,
			"comments": comments,
			"errors":   errs,
			"form":     echo.Map{"text": ""},
		})
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Text:     form.Text,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.CommentsCreated.Inc()

	return c.Redirect(http.StatusFound, fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID))
}
