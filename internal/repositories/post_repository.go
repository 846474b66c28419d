package repositories

import (
	"github.com/quillhub/quill/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Every listing returns posts newest-first with the author and group
// preloaded for display.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostByAuthorUsernameAndID(username string, id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error

	GetAllPosts(offset, limit int) ([]models.Post, error)
	CountAllPosts() (int64, error)
	GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error)
	CountPostsByGroupID(groupID uint) (int64, error)
	GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	GetPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error)
	CountPostsByAuthorIDs(authorIDs []uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByAuthorUsernameAndID resolves the /<username>/<post_id>/
// address: the post must exist AND belong to that author.
func (r *PostgresPostRepository) GetPostByAuthorUsernameAndID(username string, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost persists edits to text, group and image. CreatedAt is
// never part of the update.
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(post).Select("text", "group_id", "image_id").Updates(map[string]interface{}{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image_id": post.ImageID,
	}).Error
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) listing() *gorm.DB {
	return r.db.Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC")
}

func (r *PostgresPostRepository) GetAllPosts(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.listing().Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountAllPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.listing().Where("group_id = ?", groupID).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByGroupID(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.listing().Where("author_id = ?", authorID).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) GetPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	err := r.listing().Where("author_id IN ?", authorIDs).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByAuthorIDs(authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs).Count(&count).Error
	return count, err
}
