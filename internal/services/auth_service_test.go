package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/services"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(userRepo *MockUserRepository, mailer *MockMailer) *services.AuthService {
	return services.NewAuthService(userRepo, mailer, testJWTSecret, "http://front.example")
}

func TestAuthService_SignUp(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsernameOrEmail", "testuser", "test@example.com").Return(nil, nil).Once()
	mockRepo.On("ExistsSlug", "testuser").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	created, err := authService.SignUp(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "testuser", created.Slug)
	assert.Empty(t, created.Password, "password hash must not leave the service")
	assert.NotNil(t, created.Favs)
	mockRepo.AssertExpectations(t)

	// Username or email already in use
	mockRepo.On("GetByUsernameOrEmail", "testuser", "test@example.com").
		Return(&models.User{ID: "other"}, nil).Once()
	_, err = authService.SignUp(&models.User{Username: "testuser", Email: "test@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameEmailUsed)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SignUpSlugCollision(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	mockRepo.On("GetByUsernameOrEmail", "testuser", "test@example.com").Return(nil, nil).Once()
	mockRepo.On("ExistsSlug", "testuser").Return(true, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	created, err := authService.SignUp(&models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Contains(t, created.Slug, "testuser-")
	assert.Equal(t, created.ID[:8], created.Slug[len("testuser-"):])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SignIn(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "11111111-2222-3333-4444-555555555555",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful sign-in
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	got, token, err := authService.SignIn("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, got.Password)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown user report the same error
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.SignIn("testuser", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", "nobody").Return(nil, nil).Once()
	_, _, err = authService.SignIn("nobody", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository), new(MockMailer))

	token, err := authService.IssueToken("user-123")
	assert.NoError(t, err)
	userID, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Token signed with another secret
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
	}

	var storedToken string
	mockRepo.On("SetResetToken", "test@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
		Run(func(args mock.Arguments) {
			storedToken = args.String(1)
			expires := args.Get(2).(int64)
			assert.Greater(t, expires, time.Now().UnixMilli())
		}).
		Return(user, nil).Once()
	mockMailer.On("Send", mock.AnythingOfType("services.MailMessage")).
		Run(func(args mock.Arguments) {
			msg := args.Get(0).(services.MailMessage)
			assert.Equal(t, "test@example.com", msg.To)
			assert.Contains(t, msg.Body, storedToken)
			assert.Contains(t, msg.Body, "http://front.example/reset-password?token=")
		}).
		Return(nil).Once()

	err := authService.ForgotPassword("test@example.com")
	assert.NoError(t, err)
	assert.Len(t, storedToken, 40)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)

	// Unknown email
	mockRepo.On("SetResetToken", "ghost@example.com", mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	err = authService.ForgotPassword("ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Empty email
	err = authService.ForgotPassword("")
	assert.ErrorIs(t, err, apperrors.ErrEmailMustNotBeEmpty)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	mockRepo.On("GetByResetToken", "goodtoken", "").
		Return(&models.User{ID: "user-123", Email: "test@example.com"}, nil).Once()
	email, err := authService.ResetPassword("goodtoken")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", email)

	mockRepo.On("GetByResetToken", "badtoken", "").Return(nil, nil).Once()
	_, err = authService.ResetPassword("badtoken")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	user := &models.User{ID: "user-123", Email: "test@example.com"}

	mockRepo.On("GetByResetToken", "goodtoken", "test@example.com").Return(user, nil).Once()
	mockRepo.On("UpdatePassword", "user-123", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			hash := args.String(1)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword")))
		}).
		Return(nil).Once()
	mockRepo.On("ClearResetToken", "user-123").Return(nil).Once()

	err := authService.UpdatePassword("goodtoken", "test@example.com", "newpassword")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Expired or consumed token
	mockRepo.On("GetByResetToken", "goodtoken", "test@example.com").Return(nil, nil).Once()
	err = authService.UpdatePassword("goodtoken", "test@example.com", "newpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
	mockRepo.AssertExpectations(t)
}
