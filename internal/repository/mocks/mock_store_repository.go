package mocks

import (
	"context"

	"flyerapi/internal/model"
	"flyerapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, store *model.Store) (*model.Store, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context, filter repository.StoreFilter) ([]model.Store, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Store), args.Error(1)
}

func (m *MockStoreRepository) Update(ctx context.Context, store *model.Store) (*model.Store, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoreRepository) CountByRegion(ctx context.Context) (*model.StoreStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreStats), args.Error(1)
}
