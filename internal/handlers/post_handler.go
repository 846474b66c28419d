package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/quillhub/quill/backend/internal/metrics"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/repositories"
	"github.com/quillhub/quill/backend/validators"
)

// maxImageSize caps an uploaded post illustration at 10 MB
const maxImageSize = 10 << 20

// PostHandler handles post creation, display and editing
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	mediaRepository   repositories.MediaRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, commentRepo repositories.CommentRepository, mediaRepo repositories.MediaRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		mediaRepository:   mediaRepo,
	}
}

// RegisterPostRoutes registers the post routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, optionalAuth, requireAuth echo.MiddlewareFunc) {
	e.GET("/new/", h.NewPostForm, requireAuth)
	e.POST("/new/", h.CreatePost, requireAuth)
	e.GET("/:username/:post_id/", h.PostDetail, optionalAuth)
	e.GET("/:username/:post_id/edit/", h.EditPostForm, requireAuth)
	e.POST("/:username/:post_id/edit/", h.EditPost, requireAuth)
}

// NewPostForm returns the data the create-post page needs: an empty
// form and the groups available for the select.
func (h *PostHandler) NewPostForm(c echo.Context) error {
	groups, err := h.groupRepository.GetGroups(0, 1000)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":   echo.Map{"text": "", "group": nil},
		"groups": groups,
		"edit":   false,
	})
}

// CreatePost inserts a new post for the authenticated author and
// redirects to the global feed. Validation failure re-renders the form
// with field errors and persists nothing.
func (h *PostHandler) CreatePost(c echo.Context) error {
	authorID := getUserIDFromContext(c)

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if errs := validators.Check(form); errs != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": errs, "form": form, "edit": false})
	}

	if form.GroupID != nil {
		if _, err := h.groupRepository.GetGroupByID(*form.GroupID); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"errors": map[string]string{"group": "select a valid group"},
				"form":   form,
				"edit":   false,
			})
		}
	}

	imageID, err := h.storeImage(c)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"errors": map[string]string{"image": err.Error()},
			"form":   form,
			"edit":   false,
		})
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: authorID,
		GroupID:  form.GroupID,
		ImageID:  imageID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.PostsCreated.Inc()

	return c.Redirect(http.StatusFound, "/")
}

// PostDetail returns one post with its comments and an empty comment
// form, 404 when the (username, post id) pair does not resolve.
func (h *PostHandler) PostDetail(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":     post,
		"comments": comments,
		"form":     echo.Map{"text": ""},
	})
}

// EditPostForm returns the edit form pre-filled with the post's
// current fields. Non-authors are bounced to the detail page.
func (h *PostHandler) EditPostForm(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != getUserIDFromContext(c) {
		return c.Redirect(http.StatusFound, detailPath(post))
	}

	groups, err := h.groupRepository.GetGroups(0, 1000)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":   echo.Map{"text": post.Text, "group": post.GroupID},
		"groups": groups,
		"post":   post,
		"edit":   true,
	})
}

// EditPost applies an edit. A non-author request is refused silently:
// a redirect to the detail page with no change applied, not an error.
// The creation timestamp is never touched.
func (h *PostHandler) EditPost(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != getUserIDFromContext(c) {
		return c.Redirect(http.StatusFound, detailPath(post))
	}

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if errs := validators.Check(form); errs != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": errs, "form": form, "post": post, "edit": true})
	}

	if form.GroupID != nil {
		if _, err := h.groupRepository.GetGroupByID(*form.GroupID); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"errors": map[string]string{"group": "select a valid group"},
				"form":   form,
				"post":   post,
				"edit":   true,
			})
		}
	}

	imageID, err := h.storeImage(c)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"errors": map[string]string{"image": err.Error()},
			"form":   form,
			"post":   post,
			"edit":   true,
		})
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if imageID != "" {
		post.ImageID = imageID
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, detailPath(post))
}

// loadPost resolves the :username/:post_id pair or raises a 404
func (h *PostHandler) loadPost(c echo.Context) (*models.Post, error) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByAuthorUsernameAndID(c.Param("username"), uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

// storeImage saves an optional multipart image to the media store and
// returns its id, or "" when the request has no image part.
func (h *PostHandler) storeImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// no image attached
		return "", nil
	}
	if h.mediaRepository == nil {
		return "", fmt.Errorf("image uploads are not available")
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the %d byte limit", maxImageSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("could not read the uploaded image")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("could not read the uploaded image")
	}

	media := &models.Media{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}
	return h.mediaRepository.SaveMedia(c.Request().Context(), media)
}

func detailPath(post *models.Post) string {
	return fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID)
}
