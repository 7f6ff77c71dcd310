package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/repositories"
)

// AdvertService handles business logic for classified adverts, including the
// favorites listing resolved from the ids stored on the user.
type AdvertService struct {
	advertRepo repositories.AdvertRepository
	userRepo   repositories.UserRepository
	transactor repositories.Transactor
}

// NewAdvertService creates a new AdvertService.
func NewAdvertService(advertRepo repositories.AdvertRepository, userRepo repositories.UserRepository, transactor repositories.Transactor) *AdvertService {
	return &AdvertService{
		advertRepo: advertRepo,
		userRepo:   userRepo,
		transactor: transactor,
	}
}

// AdvertUpdate carries the editable advert fields. Nil means unchanged.
type AdvertUpdate struct {
	Name        *string
	ForSale     *bool
	Price       *float64
	Photo       *string
	Tags        *models.StringList
	Description *string
	Reserved    *bool
	Sold        *bool
}

// List returns one page of adverts matching the filter and the total count.
func (s *AdvertService) List(filter models.AdvertFilter) ([]models.Advert, int64, error) {
	adverts, total, err := s.advertRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return adverts, total, nil
}

// GetByID retrieves a single advert.
func (s *AdvertService) GetByID(id string) (*models.Advert, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotValidAdvertID
	}
	advert, err := s.advertRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if advert == nil {
		return nil, apperrors.ErrAdvertNotFound
	}
	return advert, nil
}

// GetByMember lists one page of a member's own adverts, sold included, with
// the member's total advert count.
func (s *AdvertService) GetByMember(userID string, skip, limit int) ([]models.Advert, int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, 0, apperrors.ErrNotValidUserID
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, apperrors.ErrUserNotFound
	}

	adverts, err := s.advertRepo.GetByUserID(userID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.advertRepo.CountByUserID(userID)
	if err != nil {
		return nil, 0, err
	}
	return adverts, total, nil
}

// GetFavs resolves one page of the user's favorite adverts. The page is cut
// from the ids stored on the user, then each id is resolved concurrently and
// ids pointing at adverts that no longer exist are dropped from the result.
// The reported total counts the stored ids, not the resolved page.
func (s *AdvertService) GetFavs(userID string, skip, limit int) ([]models.Advert, int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, 0, apperrors.ErrNotValidUserID
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, apperrors.ErrUserNotFound
	}

	total := int64(len(user.Favs))
	page := pageOf(user.Favs, skip, limit)
	if len(page) == 0 {
		return []models.Advert{}, total, nil
	}

	resolved := make([]*models.Advert, len(page))
	var wg sync.WaitGroup
	for i, id := range page {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			advert, err := s.advertRepo.GetByID(id)
			if err != nil {
				log.Printf("Failed to resolve favorite advert %s: %v", id, err)
				return
			}
			resolved[i] = advert
		}(i, id)
	}
	wg.Wait()

	adverts := make([]models.Advert, 0, len(page))
	for _, advert := range resolved {
		if advert != nil {
			adverts = append(adverts, *advert)
		}
	}
	return adverts, total, nil
}

// pageOf cuts a skip/limit window out of the ids, clamped to the slice.
func pageOf(ids []string, skip, limit int) []string {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(ids) {
		return nil
	}
	end := len(ids)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return ids[skip:end]
}

// Create publishes a new advert for the owner set on it.
func (s *AdvertService) Create(advert *models.Advert) (*models.Advert, error) {
	if _, err := uuid.Parse(advert.UserID); err != nil {
		return nil, apperrors.ErrNotValidUserID
	}
	owner, err := s.userRepo.GetByID(advert.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if advert.ID == "" {
		advert.ID = uuid.New().String()
	}
	advert.Slug, err = uniqueSlug(s.advertRepo, advert.Name, advert.ID)
	if err != nil {
		return nil, err
	}
	if advert.Tags == nil {
		advert.Tags = models.StringList{}
	}

	if err := s.advertRepo.Create(advert); err != nil {
		return nil, fmt.Errorf("failed to create advert: %w", err)
	}
	return advert, nil
}

// Update applies the changes to an advert owned by the caller.
func (s *AdvertService) Update(callerID, advertID string, changes AdvertUpdate) (*models.Advert, error) {
	advert, err := s.owned(callerID, advertID)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil && *changes.Name != advert.Name {
		advert.Name = *changes.Name
		advert.Slug, err = uniqueSlug(s.advertRepo, advert.Name, advert.ID)
		if err != nil {
			return nil, err
		}
	}
	if changes.ForSale != nil {
		advert.ForSale = *changes.ForSale
	}
	if changes.Price != nil {
		advert.Price = *changes.Price
	}
	if changes.Photo != nil {
		advert.Photo = *changes.Photo
	}
	if changes.Tags != nil {
		advert.Tags = *changes.Tags
	}
	if changes.Description != nil {
		advert.Description = *changes.Description
	}
	if changes.Reserved != nil {
		advert.Reserved = *changes.Reserved
	}
	if changes.Sold != nil {
		advert.Sold = *changes.Sold
	}

	if err := s.advertRepo.Update(advert); err != nil {
		return nil, fmt.Errorf("failed to update advert: %w", err)
	}
	return advert, nil
}

// Delete removes an advert owned by the caller and purges its id from every
// user's favorites list, both inside one transaction.
func (s *AdvertService) Delete(callerID, advertID string) error {
	if _, err := s.owned(callerID, advertID); err != nil {
		return err
	}
	return s.transactor.InTx(func(users repositories.UserRepository, adverts repositories.AdvertRepository) error {
		if err := users.PullAdvertFromFavs(advertID); err != nil {
			return err
		}
		return adverts.Delete(advertID)
	})
}

// owned loads the advert and checks the caller is its owner.
func (s *AdvertService) owned(callerID, advertID string) (*models.Advert, error) {
	advert, err := s.GetByID(advertID)
	if err != nil {
		return nil, err
	}
	if advert.UserID != callerID {
		return nil, apperrors.ErrNotAuthorized
	}
	return advert, nil
}
