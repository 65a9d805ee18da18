package service

import (
	"context"

	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockContactStore mocks the store.ContactStore interface
type MockContactStore struct {
	mock.Mock
	uow *MockUnitOfWork
}

// newMockContactStore returns a store whose UnitOfWork is a fresh MockUnitOfWork.
func newMockContactStore() *MockContactStore {
	return &MockContactStore{uow: &MockUnitOfWork{}}
}

func (m *MockContactStore) Save(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactStore) Update(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactStore) Delete(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactStore) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *MockContactStore) GetAll(ctx context.Context) ([]*domain.Contact, error) {
	args := m.Called(ctx)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

func (m *MockContactStore) GetByDDD(ctx context.Context, ddd string) ([]*domain.Contact, error) {
	args := m.Called(ctx, ddd)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

func (m *MockContactStore) UnitOfWork() store.UnitOfWork {
	return m.uow
}

// MockUnitOfWork mocks the store.UnitOfWork interface.
// Begin returns the incoming context unless the expectation supplies another one.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if txCtx, ok := args.Get(0).(context.Context); ok {
		return txCtx, args.Error(1)
	}
	return ctx, args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// expectBegin registers a successful Begin.
func (m *MockUnitOfWork) expectBegin() {
	m.On("Begin", mock.Anything).Return(nil, nil)
}
