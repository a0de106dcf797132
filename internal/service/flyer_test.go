package service

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"flyerapi/internal/model"
	"flyerapi/internal/render"
	renderMocks "flyerapi/internal/render/mocks"
	"flyerapi/internal/repository"
	repoMocks "flyerapi/internal/repository/mocks"
	"flyerapi/internal/storage"
	storeMocks "flyerapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type flyerFixture struct {
	stores   *repoMocks.MockStoreRepository
	exports  *repoMocks.MockExportRepository
	store    *storeMocks.MockStorage
	raster   *renderMocks.MockRasterizer
	packager *renderMocks.MockPackager
	svc      FlyerService
}

func newFlyerFixture() *flyerFixture {
	f := &flyerFixture{
		stores:   new(repoMocks.MockStoreRepository),
		exports:  new(repoMocks.MockExportRepository),
		store:    new(storeMocks.MockStorage),
		raster:   new(renderMocks.MockRasterizer),
		packager: new(renderMocks.MockPackager),
	}
	exporter := render.NewExporter(f.raster, f.packager, render.NopNotifier{})
	f.svc = NewFlyerService(f.stores, f.exports, f.store, exporter, FlyerServiceOptions{
		KeyPrefix:      "flyers",
		DownloadExpiry: 15 * time.Minute,
	})
	return f
}

func prStores(n int) []model.Store {
	stores := make([]model.Store, n)
	for i := range stores {
		stores[i] = model.Store{ID: "s", City: "Londrina", Region: model.RegionPR}
	}
	return stores
}

func TestFlyerService_Export(t *testing.T) {
	ctx := context.Background()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	t.Run("happy path", func(t *testing.T) {
		f := newFlyerFixture()
		f.stores.On("List", ctx, repository.StoreFilter{Region: model.RegionPR}).
			Return(prStores(3), nil)
		f.stores.On("CountByRegion", ctx).
			Return(&model.StoreStats{Total: 43}, nil)
		pdf := []byte("%PDF-1.7 fake")
		f.raster.On("Capture", ctx, mock.Anything).Return(img, nil)
		f.packager.On("Package", img).Return(pdf, nil)

		f.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "flyers/PR/") && strings.HasSuffix(key, ".pdf")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/pdf" && opt.Size == int64(len(pdf))
		})).Return(storage.ObjectInfo{Size: int64(len(pdf))}, nil)

		f.exports.On("Create", ctx, mock.MatchedBy(func(exp *model.Export) bool {
			return exp.Region == model.RegionPR &&
				exp.Filename == "panfleto-rede-unica-pr.pdf" &&
				exp.StoreCount == 3 &&
				exp.Size == int64(len(pdf))
		})).Return(&model.Export{ID: "exp-1", Region: model.RegionPR}, nil)

		f.store.On("PresignDownload", ctx, mock.Anything, "panfleto-rede-unica-pr.pdf", 15*time.Minute).
			Return("https://minio.local/signed", nil)

		res, err := f.svc.Export(ctx, "pr")

		require.NoError(t, err)
		assert.Equal(t, "exp-1", res.Export.ID)
		assert.Equal(t, "https://minio.local/signed", res.DownloadURL)
		f.exports.AssertExpectations(t)
		f.store.AssertExpectations(t)
	})

	t.Run("unknown region", func(t *testing.T) {
		f := newFlyerFixture()
		res, err := f.svc.Export(ctx, "XX")
		assert.ErrorIs(t, err, model.ErrUnknownRegion)
		assert.Nil(t, res)
		f.stores.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("empty region has no flyer", func(t *testing.T) {
		f := newFlyerFixture()
		f.stores.On("List", ctx, repository.StoreFilter{Region: model.RegionSP}).
			Return([]model.Store{}, nil)

		res, err := f.svc.Export(ctx, "SP")

		assert.ErrorIs(t, err, ErrNoStores)
		assert.Nil(t, res)
		f.raster.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	})

	t.Run("capture failure propagates and skips archival", func(t *testing.T) {
		f := newFlyerFixture()
		f.stores.On("List", ctx, repository.StoreFilter{Region: model.RegionPR}).
			Return(prStores(2), nil)
		f.stores.On("CountByRegion", ctx).Return(&model.StoreStats{Total: 2}, nil)
		f.raster.On("Capture", ctx, mock.Anything).Return(nil, errors.New("font missing"))

		res, err := f.svc.Export(ctx, "PR")

		assert.ErrorIs(t, err, render.ErrCapture)
		assert.Nil(t, res)
		f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("record failure rolls back the archived object", func(t *testing.T) {
		f := newFlyerFixture()
		f.stores.On("List", ctx, repository.StoreFilter{Region: model.RegionPR}).
			Return(prStores(1), nil)
		f.stores.On("CountByRegion", ctx).Return(&model.StoreStats{Total: 1}, nil)
		f.raster.On("Capture", ctx, mock.Anything).Return(img, nil)
		f.packager.On("Package", img).Return([]byte("pdf"), nil)
		f.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		f.exports.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))
		f.store.On("Delete", ctx, mock.Anything).Return(nil)

		res, err := f.svc.Export(ctx, "PR")

		assert.Nil(t, res)
		assert.ErrorContains(t, err, "record export")
		f.store.AssertCalled(t, "Delete", ctx, mock.Anything)
	})
}

func TestFlyerService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("returns newest export for the region", func(t *testing.T) {
		f := newFlyerFixture()
		f.exports.On("List", ctx, repository.PageQuery{Limit: 50, Offset: 0}).
			Return(&repository.PageResult[model.Export]{
				Items: []model.Export{
					{ID: "e3", Region: model.RegionSP, StoragePath: "flyers/SP/e3.pdf", Filename: "panfleto-rede-unica-sp.pdf"},
					{ID: "e2", Region: model.RegionPR, StoragePath: "flyers/PR/e2.pdf", Filename: "panfleto-rede-unica-pr.pdf"},
					{ID: "e1", Region: model.RegionPR, StoragePath: "flyers/PR/e1.pdf", Filename: "panfleto-rede-unica-pr.pdf"},
				},
				Total: 3,
			}, nil)
		f.store.On("PresignDownload", ctx, "flyers/PR/e2.pdf", "panfleto-rede-unica-pr.pdf", 15*time.Minute).
			Return("https://minio.local/e2", nil)

		res, err := f.svc.Download(ctx, "PR")

		require.NoError(t, err)
		assert.Equal(t, "e2", res.Export.ID)
		assert.Equal(t, "https://minio.local/e2", res.DownloadURL)
	})

	t.Run("no export recorded", func(t *testing.T) {
		f := newFlyerFixture()
		f.exports.On("List", ctx, mock.Anything).
			Return(&repository.PageResult[model.Export]{Items: []model.Export{}, Total: 0}, nil)

		res, err := f.svc.Download(ctx, "PR")

		assert.ErrorIs(t, err, ErrExportNotFound)
		assert.Nil(t, res)
	})

	t.Run("unknown region", func(t *testing.T) {
		f := newFlyerFixture()
		_, err := f.svc.Download(ctx, "nope")
		assert.ErrorIs(t, err, model.ErrUnknownRegion)
	})
}

func TestFlyerService_ListExports(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults limit and offset", func(t *testing.T) {
		f := newFlyerFixture()
		f.exports.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Export]{
				Items: []model.Export{{ID: "e1"}},
				Total: 1,
			}, nil)

		res, err := f.svc.ListExports(ctx, 0, -5)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		f.exports.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFlyerFixture()
		f.exports.On("List", ctx, mock.Anything).Return(nil, errors.New("db down"))

		res, err := f.svc.ListExports(ctx, 10, 0)

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}
