package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wallaclone/internal/models"
)

// GORMAdvertRepository is a GORM implementation of AdvertRepository.
type GORMAdvertRepository struct {
	db *gorm.DB
}

// NewGORMAdvertRepository creates a new instance of GORMAdvertRepository.
func NewGORMAdvertRepository(db *gorm.DB) *GORMAdvertRepository {
	return &GORMAdvertRepository{
		db: db,
	}
}

// Create creates a new advert in the database.
func (r *GORMAdvertRepository) Create(advert *models.Advert) error {
	if advert.ID == "" {
		advert.ID = uuid.New().String()
	}
	if err := r.db.Create(advert).Error; err != nil {
		return fmt.Errorf("failed to create advert: %w", err)
	}
	return nil
}

// GetByID retrieves a single advert by its ID.
func (r *GORMAdvertRepository) GetByID(id string) (*models.Advert, error) {
	var advert models.Advert
	if err := r.db.First(&advert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get advert by ID %s: %w", id, err)
	}
	return &advert, nil
}

// List applies the filter and returns the requested page together with the
// total number of adverts matching the filter, independent of pagination.
func (r *GORMAdvertRepository) List(filter models.AdvertFilter) ([]models.Advert, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count adverts: %w", err)
	}

	q := r.filtered(filter)
	if len(filter.Fields) > 0 {
		q = q.Select(filter.Fields)
	}
	if filter.Oldest {
		q = q.Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}

	var adverts []models.Advert
	if err := q.Find(&adverts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list adverts: %w", err)
	}
	return adverts, total, nil
}

// filtered translates the typed filter into a GORM query.
func (r *GORMAdvertRepository) filtered(filter models.AdvertFilter) *gorm.DB {
	q := r.db.Model(&models.Advert{})
	if filter.NamePrefix != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(filter.NamePrefix))+"%")
	}
	if filter.ForSale != nil {
		q = q.Where("for_sale = ?", *filter.ForSale)
	}
	if filter.Tag != "" {
		// tags is a JSON array of quoted strings
		q = q.Where("tags LIKE ? ESCAPE '\\'", `%"`+escapeLike(filter.Tag)+`"%`)
	}
	if filter.PriceExact != nil {
		q = q.Where("price = ?", *filter.PriceExact)
	}
	if filter.PriceMin != nil {
		q = q.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		q = q.Where("price <= ?", *filter.PriceMax)
	}
	if filter.OnlyUnsold {
		q = q.Where("sold = ?", false)
	}
	return q
}

// GetByUserID lists one page of a member's adverts, newest first.
func (r *GORMAdvertRepository) GetByUserID(userID string, skip, limit int) ([]models.Advert, error) {
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	var adverts []models.Advert
	if err := q.Find(&adverts).Error; err != nil {
		return nil, fmt.Errorf("failed to get adverts of user %s: %w", userID, err)
	}
	return adverts, nil
}

// CountByUserID counts all adverts owned by the member.
func (r *GORMAdvertRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Advert{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count adverts of user %s: %w", userID, err)
	}
	return count, nil
}

// DistinctTags returns the sorted set of tag values used across all adverts.
func (r *GORMAdvertRepository) DistinctTags() ([]string, error) {
	var adverts []models.Advert
	if err := r.db.Select("tags").Find(&adverts).Error; err != nil {
		return nil, fmt.Errorf("failed to collect advert tags: %w", err)
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, advert := range adverts {
		for _, tag := range advert.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Update updates an existing advert in the database.
func (r *GORMAdvertRepository) Update(advert *models.Advert) error {
	res := r.db.Save(advert)
	if res.Error != nil {
		return fmt.Errorf("failed to update advert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("advert with ID %s not found for update", advert.ID)
	}
	return nil
}

// Delete deletes an advert by its ID from the database.
func (r *GORMAdvertRepository) Delete(id string) error {
	res := r.db.Delete(&models.Advert{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete advert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("advert with ID %s not found for deletion", id)
	}
	return nil
}

// DeleteByUserID deletes all adverts owned by the member.
func (r *GORMAdvertRepository) DeleteByUserID(userID string) error {
	if err := r.db.Delete(&models.Advert{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete adverts of user %s: %w", userID, err)
	}
	return nil
}

// ExistsSlug reports whether an advert already uses the slug.
func (r *GORMAdvertRepository) ExistsSlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Advert{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count advert slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// escapeLike escapes the LIKE wildcards in a user-supplied fragment.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
