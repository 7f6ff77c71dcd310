package services

import (
	"sort"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/repositories"
)

// TagService handles business logic for advert tags.
type TagService struct {
	tagRepo    repositories.TagRepository
	advertRepo repositories.AdvertRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repositories.TagRepository, advertRepo repositories.AdvertRepository) *TagService {
	return &TagService{
		tagRepo:    tagRepo,
		advertRepo: advertRepo,
	}
}

// GetAll returns the sorted union of the curated tags and every tag value
// currently used by an advert.
func (s *TagService) GetAll() ([]string, error) {
	curated, err := s.tagRepo.GetAll()
	if err != nil {
		return nil, err
	}
	used, err := s.advertRepo.DistinctTags()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(curated)+len(used))
	var values []string
	for _, tag := range curated {
		if _, ok := seen[tag.Value]; !ok {
			seen[tag.Value] = struct{}{}
			values = append(values, tag.Value)
		}
	}
	for _, value := range used {
		if _, ok := seen[value]; !ok {
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}
	sort.Strings(values)
	return values, nil
}

// Add registers a new curated tag value.
func (s *TagService) Add(value string) (*models.Tag, error) {
	existing, err := s.tagRepo.GetByValue(value)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrTagAlreadyExists
	}
	tag := &models.Tag{Value: value}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}
