package mocks

import (
	"context"
	"image"

	"flyerapi/internal/flyer"
	"flyerapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRasterizer struct {
	mock.Mock
}

func (m *MockRasterizer) Capture(ctx context.Context, doc *flyer.Document) (image.Image, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(image.Image), args.Error(1)
}

type MockPackager struct {
	mock.Mock
}

func (m *MockPackager) Package(img image.Image) ([]byte, error) {
	args := m.Called(img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ExportStarted(region model.Region) {
	m.Called(region)
}

func (m *MockNotifier) ExportSucceeded(region model.Region, size int) {
	m.Called(region, size)
}

func (m *MockNotifier) ExportFailed(region model.Region, err error) {
	m.Called(region, err)
}
