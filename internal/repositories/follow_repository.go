package repositories

import (
	"github.com/quillhub/quill/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-graph operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	GetFollowingIDs(userID uint) ([]uint, error)
	GetFollowersCount(authorID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge. A concurrent insert of the same
// (user, author) pair loses the race inside the store: the unique
// index plus ON CONFLICT DO NOTHING turns the duplicate into a
// success, so repeated follows leave exactly one edge.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(follow).Error
}

// DeleteFollow removes the edge if present. A missing edge is not an
// error; unfollow is idempotent.
func (r *PostgresFollowRepository) DeleteFollow(userID, authorID uint) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowingIDs returns the ids of every author the user follows
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Pluck("author_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
