package services

import (
	"fmt"

	"github.com/google/uuid"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/repositories"
)

// FavService handles business logic for the favorites list stored on a user.
type FavService struct {
	userRepo repositories.UserRepository
}

// NewFavService creates a new FavService.
func NewFavService(userRepo repositories.UserRepository) *FavService {
	return &FavService{
		userRepo: userRepo,
	}
}

// SetFavs replaces the user's favorites list wholesale and returns the
// updated user. Order and duplicates are preserved as sent.
func (s *FavService) SetFavs(userID string, favs []string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.ErrNotValidUserID
	}
	for _, id := range favs {
		if _, err := uuid.Parse(id); err != nil {
			return nil, apperrors.ErrNotValidAdvertID
		}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	user.Favs = models.StringList(favs)
	if user.Favs == nil {
		user.Favs = models.StringList{}
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update favorites: %w", err)
	}
	user.Password = ""
	return user, nil
}
