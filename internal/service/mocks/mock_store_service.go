package mocks

import (
	"context"

	"flyerapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) Create(ctx context.Context, fields model.StoreFields) (*model.Store, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) List(ctx context.Context, region string) ([]model.Store, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Store), args.Error(1)
}

func (m *MockStoreService) Get(ctx context.Context, id string) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) Update(ctx context.Context, id string, fields model.StoreFields) (*model.Store, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoreService) Stats(ctx context.Context) (*model.StoreStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreStats), args.Error(1)
}
