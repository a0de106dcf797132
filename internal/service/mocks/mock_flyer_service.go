package mocks

import (
	"context"

	"flyerapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFlyerService struct {
	mock.Mock
}

func (m *MockFlyerService) Export(ctx context.Context, region string) (*service.ExportResult, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockFlyerService) Download(ctx context.Context, region string) (*service.ExportResult, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockFlyerService) ListExports(ctx context.Context, limit, offset int) (*service.ExportListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportListResult), args.Error(1)
}
