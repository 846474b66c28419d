package repositories

import (
	"github.com/quillhub/quill/backend/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	CreateGroup(group *models.Group) error
	GetGroupByID(id uint) (*models.Group, error)
	GetGroupBySlug(slug string) (*models.Group, error)
	GetGroups(offset, limit int) ([]models.Group, error)
	CountGroups() (int64, error)
}

// PostgresGroupRepository implements GroupRepository for PostgreSQL
type PostgresGroupRepository struct {
	db *gorm.DB
}

// NewPostgresGroupRepository creates a new PostgresGroupRepository
func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// CreateGroup inserts a group. Duplicate titles or slugs are rejected
// by the store's unique indexes.
func (r *PostgresGroupRepository) CreateGroup(group *models.Group) error {
	return r.db.Create(group).Error
}

func (r *PostgresGroupRepository) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) GetGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetGroups lists groups ordered by primary key ascending
func (r *PostgresGroupRepository) GetGroups(offset, limit int) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&groups).Error
	return groups, err
}

func (r *PostgresGroupRepository) CountGroups() (int64, error) {
	var count int64
	err := r.db.Model(&models.Group{}).Count(&count).Error
	return count, err
}
