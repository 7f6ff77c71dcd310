package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wallaclone/internal/models"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// GetAll retrieves all normalized tags, sorted by value.
func (r *GORMTagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("value ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get all tags: %w", err)
	}
	return tags, nil
}

// GetByValue retrieves a tag by its value, or (nil, nil) if absent.
func (r *GORMTagRepository) GetByValue(value string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "value = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag %s: %w", value, err)
	}
	return &tag, nil
}

// Create creates a new tag in the database.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}
