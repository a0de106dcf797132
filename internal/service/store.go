package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"flyerapi/internal/model"
	"flyerapi/internal/repository"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrStoreNotFound    = errors.New("store not found")
	ErrCityRequired     = errors.New("city is required")
	ErrAddressRequired  = errors.New("address is required")
	ErrWhatsAppRequired = errors.New("whatsapp is required")
)

// StoreService defines the use cases for managing store locations.
type StoreService interface {
	// Create validates the fields and inserts a new store.
	Create(ctx context.Context, fields model.StoreFields) (*model.Store, error)

	// List returns stores, optionally limited to one region, ordered by
	// region then city.
	List(ctx context.Context, region string) ([]model.Store, error)

	// Get returns a single store by its ID.
	Get(ctx context.Context, id string) (*model.Store, error)

	// Update overwrites the mutable fields of an existing store.
	Update(ctx context.Context, id string, fields model.StoreFields) (*model.Store, error)

	// Delete removes a store by ID.
	Delete(ctx context.Context, id string) error

	// Stats returns per-region counts and the network total.
	Stats(ctx context.Context) (*model.StoreStats, error)
}

// storeService is a concrete implementation of StoreService.
type storeService struct {
	repo repository.StoreRepository
}

// NewStoreService constructs a new StoreService.
func NewStoreService(repo repository.StoreRepository) StoreService {
	return &storeService{repo: repo}
}

// validateFields checks required fields and resolves the region string.
// Phone is intentionally optional; the renderer falls back to the national
// 0800 number for stores without one.
func validateFields(fields model.StoreFields) (model.Region, error) {
	if strings.TrimSpace(fields.City) == "" {
		return "", ErrCityRequired
	}
	if strings.TrimSpace(fields.Address) == "" {
		return "", ErrAddressRequired
	}
	if strings.TrimSpace(fields.WhatsApp) == "" {
		return "", ErrWhatsAppRequired
	}
	return model.ParseRegion(fields.Region)
}

func (s *storeService) Create(ctx context.Context, fields model.StoreFields) (*model.Store, error) {
	region, err := validateFields(fields)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	store := &model.Store{
		ID:        uuid.New().String(),
		City:      strings.TrimSpace(fields.City),
		Region:    region,
		Address:   strings.TrimSpace(fields.Address),
		Phone:     strings.TrimSpace(fields.Phone),
		WhatsApp:  strings.TrimSpace(fields.WhatsApp),
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return stored, nil
}

func (s *storeService) List(ctx context.Context, region string) ([]model.Store, error) {
	var filter repository.StoreFilter
	if region != "" {
		r, err := model.ParseRegion(region)
		if err != nil {
			return nil, err
		}
		filter.Region = r
	}
	return s.repo.List(ctx, filter)
}

func (s *storeService) Get(ctx context.Context, id string) (*model.Store, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, id string, fields model.StoreFields) (*model.Store, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	region, err := validateFields(fields)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	current.City = strings.TrimSpace(fields.City)
	current.Region = region
	current.Address = strings.TrimSpace(fields.Address)
	current.Phone = strings.TrimSpace(fields.Phone)
	current.WhatsApp = strings.TrimSpace(fields.WhatsApp)
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return updated, nil
}

func (s *storeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *storeService) Stats(ctx context.Context) (*model.StoreStats, error) {
	return s.repo.CountByRegion(ctx)
}
