package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"flyerapi/internal/flyer"
	"flyerapi/internal/model"
	"flyerapi/internal/render"
	"flyerapi/internal/repository"
	"flyerapi/internal/storage"
)

var (
	// ErrNoStores is returned when a flyer is requested for a region with
	// no store locations to print.
	ErrNoStores = errors.New("no stores in region")

	// ErrExportNotFound is returned when no archived flyer exists for a
	// region.
	ErrExportNotFound = errors.New("export not found")
)

// ExportResult is the service-level DTO returned after a successful export.
type ExportResult struct {
	Export      *model.Export `json:"export"`
	DownloadURL string        `json:"download_url"`
}

// ExportListResult is the service-level DTO for paginated exports.
type ExportListResult struct {
	Items []model.Export `json:"data"`
	Total int            `json:"total"`
}

// FlyerService orchestrates flyer generation: it assembles the document from
// the store list, runs the render pipeline, archives the PDF and records the
// export.
type FlyerService interface {
	// Export generates the flyer PDF for one region, uploads it to object
	// storage and returns the export record with a presigned download URL.
	Export(ctx context.Context, region string) (*ExportResult, error)

	// Download returns a presigned URL for the most recent export of a
	// region without generating a new one.
	Download(ctx context.Context, region string) (*ExportResult, error)

	// ListExports returns archived exports using limit/offset pagination.
	ListExports(ctx context.Context, limit, offset int) (*ExportListResult, error)
}

// flyerService is a concrete implementation of FlyerService.
type flyerService struct {
	stores   repository.StoreRepository
	exports  repository.ExportRepository
	store    storage.Storage
	exporter *render.Exporter

	keyPrefix      string
	downloadExpiry time.Duration
}

// FlyerServiceOptions configures archival behavior.
type FlyerServiceOptions struct {
	// KeyPrefix is the object key prefix PDFs are stored under.
	KeyPrefix string
	// DownloadExpiry bounds presigned URL validity.
	DownloadExpiry time.Duration
}

// NewFlyerService constructs a new FlyerService.
func NewFlyerService(stores repository.StoreRepository, exports repository.ExportRepository, store storage.Storage, exporter *render.Exporter, opt FlyerServiceOptions) FlyerService {
	if opt.KeyPrefix == "" {
		opt.KeyPrefix = "flyers"
	}
	if opt.DownloadExpiry <= 0 {
		opt.DownloadExpiry = 15 * time.Minute
	}
	return &flyerService{
		stores:         stores,
		exports:        exports,
		store:          store,
		exporter:       exporter,
		keyPrefix:      opt.KeyPrefix,
		downloadExpiry: opt.DownloadExpiry,
	}
}

func (s *flyerService) Export(ctx context.Context, region string) (*ExportResult, error) {
	r, err := model.ParseRegion(region)
	if err != nil {
		return nil, err
	}

	stores, err := s.stores.List(ctx, repository.StoreFilter{Region: r})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if len(stores) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoStores, r)
	}

	stats, err := s.stores.CountByRegion(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}

	doc := flyer.Compose(stores, r, stats.Total)
	pdf, err := s.exporter.Export(ctx, &doc)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	key := path.Join(s.keyPrefix, string(r), id+".pdf")
	filename := flyer.ArtifactName(r)

	_, err = s.store.Put(ctx, key, bytes.NewReader(pdf), storage.PutObjectOptions{
		Size:        int64(len(pdf)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"region":      string(r),
			"store-count": fmt.Sprintf("%d", len(stores)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("archive flyer: %w", err)
	}

	exp := &model.Export{
		ID:          id,
		Region:      r,
		Filename:    filename,
		StoragePath: key,
		Size:        int64(len(pdf)),
		StoreCount:  len(stores),
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.exports.Create(ctx, exp)
	if err != nil {
		// Rollback: drop the archived object so storage and DB stay in sync.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("record export failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("record export: %w", err)
	}

	url, err := s.store.PresignDownload(ctx, key, filename, s.downloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &ExportResult{Export: stored, DownloadURL: url}, nil
}

func (s *flyerService) Download(ctx context.Context, region string) (*ExportResult, error) {
	r, err := model.ParseRegion(region)
	if err != nil {
		return nil, err
	}

	// Exports are listed newest first; scan the first page for the region.
	res, err := s.exports.List(ctx, repository.PageQuery{Limit: 50, Offset: 0})
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	for i := range res.Items {
		exp := &res.Items[i]
		if exp.Region != r {
			continue
		}
		url, err := s.store.PresignDownload(ctx, exp.StoragePath, exp.Filename, s.downloadExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign download: %w", err)
		}
		return &ExportResult{Export: exp, DownloadURL: url}, nil
	}
	return nil, ErrExportNotFound
}

func (s *flyerService) ListExports(ctx context.Context, limit, offset int) (*ExportListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.exports.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ExportListResult{Items: res.Items, Total: res.Total}, nil
}
