package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/repositories"
)

// AuthService handles business logic for authentication and account recovery.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     Mailer
	jwtSecret  []byte
	frontURL   string
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, jwtSecret, frontURL string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		frontURL:   frontURL,
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// SignUp registers a new user, hashes their password, and saves them to the
// database. Username and email must both be unused.
func (s *AuthService) SignUp(user *models.User) (*models.User, error) {
	existing, err := s.userRepo.GetByUsernameOrEmail(user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameEmailUsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Slug, err = uniqueSlug(s.userRepo, user.Username, user.ID)
	if err != nil {
		return nil, err
	}
	if user.Favs == nil {
		user.Favs = models.StringList{}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// SignIn authenticates a user and returns the user together with a signed JWT.
// Unknown username and wrong password are deliberately indistinguishable.
func (s *AuthService) SignIn(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user %s: %w", username, err)
	}
	if user == nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	user.Password = ""
	return user, token, nil
}

// IssueToken signs a fresh JWT carrying the user id.
func (s *AuthService) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the user id it carries.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", apperrors.ErrInvalidToken
	}
	return userID, nil
}

// ForgotPassword stores a single-use reset token on the account and enqueues
// the recovery mail with a link to the front-end reset page.
func (s *AuthService) ForgotPassword(email string) error {
	if email == "" {
		return apperrors.ErrEmailMustNotBeEmpty
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(time.Hour).UnixMilli()

	user, err := s.userRepo.SetResetToken(email, token, expires)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontURL, token)
	if err := s.mailer.Send(RecoverPasswordMail(user.Email, user.Username, link)); err != nil {
		return fmt.Errorf("failed to enqueue recovery mail: %w", err)
	}
	return nil
}

// ResetPassword checks a reset token and returns the email of the account it
// belongs to, so the front end can show who is resetting.
func (s *AuthService) ResetPassword(token string) (string, error) {
	user, err := s.userRepo.GetByResetToken(token, "")
	if err != nil {
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}
	if user == nil {
		return "", apperrors.ErrInvalidOrExpiredToken
	}
	return user.Email, nil
}

// UpdatePassword consumes a valid reset token and stores the new password.
func (s *AuthService) UpdatePassword(token, email, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(token, email)
	if err != nil {
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if user == nil {
		return apperrors.ErrInvalidOrExpiredToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		return apperrors.ErrPasswordNotUpdated
	}
	if err := s.userRepo.ClearResetToken(user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// newResetToken draws 20 random bytes and encodes them as 40 hex characters.
func newResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
