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

func existingContact() *domain.Contact {
	return domain.NewContactWithID(42, "João Silva", "joao@example.com", domain.MustPhoneNumber("11999999999"))
}

func TestUpdateContactUseCase_Execute_Success(t *testing.T) {
	contact := existingContact()

	repo := newMockContactStore()
	repo.uow.expectBegin()
	repo.On("GetByID", mock.Anything, int64(42)).Return(contact, nil).Once()
	repo.On("Update", mock.Anything, contact).Return(nil).Once()
	repo.uow.On("Commit", mock.Anything).Return(nil).Once()

	uc, err := NewUpdateContactUseCase(repo, nil)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), UpdateContactRequest{
		ID:          42,
		Name:        "Maria Souza",
		PhoneNumber: "(21) 3333-4444",
		Email:       "maria@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID, "identity is preserved")
	assert.Equal(t, "Maria Souza", resp.Name)
	assert.Equal(t, "2133334444", resp.PhoneNumber)
	assert.Equal(t, "maria@example.com", resp.Email)
	assert.Equal(t, "21", resp.DDD)

	assert.Equal(t, int64(42), contact.ID)
	assert.Equal(t, "Maria Souza", contact.Name)
	assert.Equal(t, "21", contact.DDD())

	repo.AssertExpectations(t)
	repo.uow.AssertNumberOfCalls(t, "Commit", 1)
}

func TestUpdateContactUseCase_Execute_NotFound(t *testing.T) {
	repo := newMockContactStore()
	repo.uow.expectBegin()
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrContactNotFound).Once()
	repo.uow.On("Rollback", mock.Anything).Return(nil).Once()

	uc, err := NewUpdateContactUseCase(repo, nil)
	require.NoError(t, err)

	// Invalid input is not reported when the contact does not exist.
	resp, err := uc.Execute(context.Background(), UpdateContactRequest{
		ID:          99,
		Name:        "",
		PhoneNumber: "invalid",
		Email:       "invalid",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, store.ErrContactNotFound)
	assert.True(t, store.IsNotFoundError(err))
	assert.NotErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateContactUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		req         UpdateContactRequest
		wantMessage string
	}{
		{
			name:        "invalid phone checked first",
			req:         UpdateContactRequest{ID: 42, Name: "", PhoneNumber: "123", Email: "invalid"},
			wantMessage: "Número de telefone informado incorretamente, Modelo esperado: (dd) 99999-9999.",
		},
		{
			name:        "name checked before email",
			req:         UpdateContactRequest{ID: 42, Name: " ", PhoneNumber: "11999999999", Email: "invalid"},
			wantMessage: "O nome é obrigatório.",
		},
		{
			name:        "invalid email",
			req:         UpdateContactRequest{ID: 42, Name: "João", PhoneNumber: "11999999999", Email: "joao@"},
			wantMessage: "Formato de e-mail inválido.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := existingContact()

			repo := newMockContactStore()
			repo.uow.expectBegin()
			repo.On("GetByID", mock.Anything, int64(42)).Return(contact, nil).Once()
			repo.uow.On("Rollback", mock.Anything).Return(nil).Once()

			uc, err := NewUpdateContactUseCase(repo, nil)
			require.NoError(t, err)

			resp, err := uc.Execute(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, "João Silva", contact.Name, "contact is left untouched")
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			repo.uow.AssertNotCalled(t, "Commit", mock.Anything)
			repo.uow.AssertNumberOfCalls(t, "Rollback", 1)
		})
	}
}

func TestUpdateContactUseCase_Execute_UpdateFailure(t *testing.T) {
	updateErr := errors.New("deadlock detected")

	repo := newMockContactStore()
	repo.uow.expectBegin()
	repo.On("GetByID", mock.Anything, int64(42)).Return(existingContact(), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(updateErr).Once()
	repo.uow.On("Rollback", mock.Anything).Return(nil).Once()

	uc, err := NewUpdateContactUseCase(repo, nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), UpdateContactRequest{
		ID:          42,
		Name:        "João",
		PhoneNumber: "11999999999",
		Email:       "joao@example.com",
	})

	assert.Same(t, updateErr, err)
	repo.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateContactUseCase_Execute_BeginFailure(t *testing.T) {
	beginErr := errors.New("pool exhausted")

	repo := newMockContactStore()
	repo.uow.On("Begin", mock.Anything).Return(nil, beginErr).Once()

	uc, err := NewUpdateContactUseCase(repo, nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), UpdateContactRequest{ID: 42})

	assert.Same(t, beginErr, err)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
