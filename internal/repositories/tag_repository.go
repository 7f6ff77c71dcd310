package repositories

import "wallaclone/internal/models"

// TagRepository defines the interface for the normalized tag store.
type TagRepository interface {
	GetAll() ([]models.Tag, error)
	GetByValue(value string) (*models.Tag, error)
	Create(tag *models.Tag) error
}
