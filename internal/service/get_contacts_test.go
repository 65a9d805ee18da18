package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleContacts() []*domain.Contact {
	return []*domain.Contact{
		domain.NewContactWithID(1, "Ana", "ana@example.com", domain.MustPhoneNumber("11999999999")),
		domain.NewContactWithID(2, "Bruno", "bruno@example.com", domain.MustPhoneNumber("11333333333")),
		domain.NewContactWithID(3, "Carla", "carla@example.com", domain.MustPhoneNumber("21988887777")),
	}
}

func TestGetContactsUseCase_Execute_FiltersByDDD(t *testing.T) {
	all := sampleContacts()

	repo := newMockContactStore()
	repo.On("GetByDDD", mock.Anything, "11").Return(all[:2], nil).Once()

	uc, err := NewGetContactsUseCase(repo, nil)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), "11")

	require.NoError(t, err)
	require.Len(t, resp, 2)
	for _, c := range resp {
		assert.Equal(t, "11", c.DDD)
	}
	repo.AssertNumberOfCalls(t, "GetByDDD", 1)
	repo.uow.AssertNotCalled(t, "Begin", mock.Anything)
	repo.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestGetContactsUseCase_Execute_EmptyResult(t *testing.T) {
	repo := newMockContactStore()
	repo.On("GetByDDD", mock.Anything, "99").Return(nil, nil).Once()

	uc, err := NewGetContactsUseCase(repo, nil)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), "99")

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestGetContactsUseCase_GetAll(t *testing.T) {
	repo := newMockContactStore()
	repo.On("GetAll", mock.Anything).Return(sampleContacts(), nil).Once()

	uc, err := NewGetContactsUseCase(repo, nil)
	require.NoError(t, err)

	resp, err := uc.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, resp, 3)
	assert.Equal(t, int64(3), resp[2].ID)
	assert.Equal(t, "21988887777", resp[2].PhoneNumber)
	assert.Equal(t, "21", resp[2].DDD)
	repo.AssertNumberOfCalls(t, "GetAll", 1)
	repo.AssertNotCalled(t, "GetByDDD", mock.Anything, mock.Anything)
}

func TestGetContactsUseCase_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := newMockContactStore()
		repo.On("GetByID", mock.Anything, int64(1)).Return(sampleContacts()[0], nil).Once()

		uc, err := NewGetContactsUseCase(repo, nil)
		require.NoError(t, err)

		resp, err := uc.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Ana", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newMockContactStore()
		repo.On("GetByID", mock.Anything, int64(5)).Return(nil, store.ErrContactNotFound).Once()

		uc, err := NewGetContactsUseCase(repo, nil)
		require.NoError(t, err)

		resp, err := uc.GetByID(context.Background(), 5)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, store.ErrContactNotFound)
	})
}

func TestGetContactsUseCase_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")

	repo := newMockContactStore()
	repo.On("GetAll", mock.Anything).Return(nil, storeErr).Once()
	repo.On("GetByDDD", mock.Anything, "").Return(nil, storeErr).Once()

	uc, err := NewGetContactsUseCase(repo, nil)
	require.NoError(t, err)

	_, err = uc.GetAll(context.Background())
	assert.Same(t, storeErr, err)

	_, err = uc.Execute(context.Background(), "")
	assert.Same(t, storeErr, err)
}
