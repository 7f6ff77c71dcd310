package services

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/repositories"
)

// UserService handles business logic for member accounts.
type UserService struct {
	userRepo   repositories.UserRepository
	advertRepo repositories.AdvertRepository
	transactor repositories.Transactor
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, advertRepo repositories.AdvertRepository, transactor repositories.Transactor) *UserService {
	return &UserService{
		userRepo:   userRepo,
		advertRepo: advertRepo,
		transactor: transactor,
	}
}

// UserUpdate carries the editable profile fields. Nil means unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Get retrieves a user by id, without the password hash.
func (s *UserService) Get(userID string) (*models.User, error) {
	user, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Update applies profile changes. A changed username or email must still be
// unused by any other account, and a changed password is re-hashed. Each
// changed field is checked on its own, so the pre-check can never be
// satisfied by the caller's own unchanged field.
func (s *UserService) Update(userID string, changes UserUpdate) (*models.User, error) {
	user, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	if changes.Username != nil && *changes.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(*changes.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrUsernameEmailUsed
		}
		user.Username = *changes.Username
		user.Slug, err = uniqueSlug(s.userRepo, user.Username, user.ID)
		if err != nil {
			return nil, err
		}
	}

	if changes.Email != nil && *changes.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(*changes.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrUsernameEmailUsed
		}
		user.Email = *changes.Email
	}

	if changes.Password != nil && *changes.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*changes.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// ChangePassword verifies the current password and stores the new one.
func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.get(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return apperrors.ErrPasswordNotUpdated
	}
	return nil
}

// Unsubscribe deletes the account together with all its adverts, and purges
// those adverts from every other user's favorites. The whole cascade runs in
// one transaction.
func (s *UserService) Unsubscribe(userID string) error {
	if _, err := s.get(userID); err != nil {
		return err
	}
	return s.transactor.InTx(func(users repositories.UserRepository, adverts repositories.AdvertRepository) error {
		owned, err := adverts.GetByUserID(userID, 0, 0)
		if err != nil {
			return err
		}
		for _, advert := range owned {
			if err := users.PullAdvertFromFavs(advert.ID); err != nil {
				return err
			}
		}
		if err := adverts.DeleteByUserID(userID); err != nil {
			return err
		}
		return users.Delete(userID)
	})
}

// get loads the user or reports the id as invalid or unknown.
func (s *UserService) get(userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.ErrNotValidUserID
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
