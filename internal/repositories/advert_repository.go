package repositories

import "wallaclone/internal/models"

// AdvertRepository defines the interface for advert data access.
// Lookup methods return (nil, nil) when no row matches.
type AdvertRepository interface {
	Create(advert *models.Advert) error
	GetByID(id string) (*models.Advert, error)
	// List applies the filter and returns one page plus the total count of
	// adverts matching the filter regardless of pagination.
	List(filter models.AdvertFilter) ([]models.Advert, int64, error)
	GetByUserID(userID string, skip, limit int) ([]models.Advert, error)
	CountByUserID(userID string) (int64, error)
	DistinctTags() ([]string, error)
	Update(advert *models.Advert) error
	Delete(id string) error
	DeleteByUserID(userID string) error
	ExistsSlug(slug string) (bool, error)
}
