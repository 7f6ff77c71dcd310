package repositories

import "wallaclone/internal/models"

// UserRepository defines the interface for user data access.
// Lookup methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsernameOrEmail(username, email string) (*models.User, error)
	GetByResetToken(token, email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(id, hashedPassword string) error
	SetResetToken(email, token string, expires int64) (*models.User, error)
	ClearResetToken(id string) error
	Delete(id string) error
	// PullAdvertFromFavs removes every occurrence of the advert id from all
	// users' favorites lists.
	PullAdvertFromFavs(advertID string) error
	ExistsSlug(slug string) (bool, error)
}
