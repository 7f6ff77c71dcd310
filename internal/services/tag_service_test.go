package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wallaclone/internal/apperrors"
	"wallaclone/internal/models"
	"wallaclone/internal/services"
)

func TestTagService_GetAllUnion(t *testing.T) {
	mockTags := new(MockTagRepository)
	mockAdverts := new(MockAdvertRepository)
	svc := services.NewTagService(mockTags, mockAdverts)

	mockTags.On("GetAll").Return([]models.Tag{{Value: "motor"}, {Value: "work"}}, nil).Once()
	mockAdverts.On("DistinctTags").Return([]string{"lifestyle", "motor"}, nil).Once()

	values, err := svc.GetAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"lifestyle", "motor", "work"}, values)
	mockTags.AssertExpectations(t)
	mockAdverts.AssertExpectations(t)
}

func TestTagService_Add(t *testing.T) {
	mockTags := new(MockTagRepository)
	svc := services.NewTagService(mockTags, new(MockAdvertRepository))

	mockTags.On("GetByValue", "motor").Return(&models.Tag{Value: "motor"}, nil).Once()
	_, err := svc.Add("motor")
	assert.ErrorIs(t, err, apperrors.ErrTagAlreadyExists)

	mockTags.On("GetByValue", "garden").Return(nil, nil).Once()
	mockTags.On("Create", mock.AnythingOfType("*models.Tag")).Return(nil).Once()
	tag, err := svc.Add("garden")
	assert.NoError(t, err)
	assert.Equal(t, "garden", tag.Value)
	mockTags.AssertExpectations(t)
}
