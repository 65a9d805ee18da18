package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteContactUseCase_Execute_Success(t *testing.T) {
	contact := existingContact()

	repo := newMockContactStore()
	repo.uow.expectBegin()
	repo.On("GetByID", mock.Anything, int64(42)).Return(contact, nil).Once()
	repo.On("Delete", mock.Anything, contact).Return(nil).Once()
	repo.uow.On("Commit", mock.Anything).Return(nil).Once()

	uc, err := NewDeleteContactUseCase(repo, nil)
	require.NoError(t, err)

	err = uc.Execute(context.Background(), 42)

	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
	repo.AssertNumberOfCalls(t, "Delete", 1)
	repo.uow.AssertNumberOfCalls(t, "Commit", 1)
	repo.uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestDeleteContactUseCase_Execute_NotFound(t *testing.T) {
	repo := newMockContactStore()
	repo.uow.expectBegin()
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, store.ErrContactNotFound).Once()
	repo.uow.On("Rollback", mock.Anything).Return(nil).Once()

	uc, err := NewDeleteContactUseCase(repo, nil)
	require.NoError(t, err)

	err = uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, store.ErrContactNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeleteContactUseCase_Execute_DeleteFailure(t *testing.T) {
	deleteErr := errors.New("foreign key violation")

	repo := newMockContactStore()
	repo.uow.expectBegin()
	repo.On("GetByID", mock.Anything, int64(42)).Return(existingContact(), nil).Once()
	repo.On("Delete", mock.Anything, mock.Anything).Return(deleteErr).Once()
	repo.uow.On("Rollback", mock.Anything).Return(nil).Once()

	uc, err := NewDeleteContactUseCase(repo, nil)
	require.NoError(t, err)

	err = uc.Execute(context.Background(), 42)

	assert.Same(t, deleteErr, err)
	repo.uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.uow.AssertNumberOfCalls(t, "Rollback", 1)
}
