package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wallaclone/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByUsernameOrEmail retrieves a user matching either the username or the
// email. Used for the uniqueness pre-check at sign-up.
func (r *GORMUserRepository) GetByUsernameOrEmail(username, email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ? OR email = ?", username, email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	return &user, nil
}

// GetByResetToken retrieves the user whose stored reset token matches and has
// not expired yet. When email is non-empty it must match too.
func (r *GORMUserRepository) GetByResetToken(token, email string) (*models.User, error) {
	q := r.db.Where("reset_password_token = ? AND reset_password_expires >= ?", token, time.Now().UnixMilli())
	if email != "" {
		q = q.Where("email = ?", email)
	}
	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return &user, nil
}

// Update persists all fields of the user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for update", user.ID)
	}
	return nil
}

// UpdatePassword stores a new password hash for the user.
func (r *GORMUserRepository) UpdatePassword(id, hashedPassword string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("password", hashedPassword)
	if res.Error != nil {
		return fmt.Errorf("failed to update password for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for password update", id)
	}
	return nil
}

// SetResetToken stores a password-reset token and its expiry on the user
// matching the email, returning that user, or (nil, nil) if no user matches.
func (r *GORMUserRepository) SetResetToken(email, token string, expires int64) (*models.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil || user == nil {
		return nil, err
	}
	err = r.db.Model(user).Updates(map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to set reset token for %s: %w", email, err)
	}
	return user, nil
}

// ClearResetToken removes the reset token and expiry so the token cannot be
// used twice.
func (r *GORMUserRepository) ClearResetToken(id string) error {
	err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_password_token":   "",
		"reset_password_expires": 0,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to clear reset token for user %s: %w", id, err)
	}
	return nil
}

// Delete removes a user by their ID.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for deletion", id)
	}
	return nil
}

// PullAdvertFromFavs removes every occurrence of the advert id from all
// users' favorites lists, so a deleted advert leaves no dangling references.
func (r *GORMUserRepository) PullAdvertFromFavs(advertID string) error {
	// The favs column is a JSON array of quoted ids, so a coarse LIKE
	// narrows the candidates before filtering precisely in memory.
	var users []models.User
	if err := r.db.Where("favs LIKE ?", `%"`+advertID+`"%`).Find(&users).Error; err != nil {
		return fmt.Errorf("failed to find users favoriting advert %s: %w", advertID, err)
	}
	for i := range users {
		kept := make(models.StringList, 0, len(users[i].Favs))
		for _, fav := range users[i].Favs {
			if fav != advertID {
				kept = append(kept, fav)
			}
		}
		if len(kept) == len(users[i].Favs) {
			continue
		}
		users[i].Favs = kept
		if err := r.db.Save(&users[i]).Error; err != nil {
			return fmt.Errorf("failed to pull advert %s from favs of user %s: %w", advertID, users[i].ID, err)
		}
	}
	return nil
}

// ExistsSlug reports whether a user already uses the slug.
func (r *GORMUserRepository) ExistsSlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count user slug %s: %w", slug, err)
	}
	return count > 0, nil
}
