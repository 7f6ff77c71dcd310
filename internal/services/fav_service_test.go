package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/services"
)

func TestFavService_SetFavs(t *testing.T) {
	mockUsers := new(MockUserRepository)
	svc := services.NewFavService(mockUsers)

	_, err := svc.SetFavs("nope", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotValidUserID)

	_, err = svc.SetFavs(ownerID, []string{"not-an-advert-id"})
	assert.ErrorIs(t, err, apperrors.ErrNotValidAdvertID)

	mockUsers.On("GetByID", ownerID).Return(nil, nil).Once()
	_, err = svc.SetFavs(ownerID, []string{favID(0)})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Replacement keeps order and duplicates
	stored := &models.User{ID: ownerID, Favs: models.StringList{favID(3)}, Password: "hash"}
	mockUsers.On("GetByID", ownerID).Return(stored, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := svc.SetFavs(ownerID, []string{favID(0), favID(1), favID(0)})
	assert.NoError(t, err)
	assert.Equal(t, models.StringList{favID(0), favID(1), favID(0)}, user.Favs)
	assert.Empty(t, user.Password)
	mockUsers.AssertExpectations(t)
}

func TestFavService_SetFavsEmptyList(t *testing.T) {
	mockUsers := new(MockUserRepository)
	svc := services.NewFavService(mockUsers)

	stored := &models.User{ID: ownerID, Favs: models.StringList{favID(0)}}
	mockUsers.On("GetByID", ownerID).Return(stored, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := svc.SetFavs(ownerID, nil)
	assert.NoError(t, err)
	assert.NotNil(t, user.Favs)
	assert.Empty(t, user.Favs)
}
