package repository

import (
	"context"

	"flyerapi/internal/model"
)

// StoreFilter narrows List to one region. The zero value lists everything.
type StoreFilter struct {
	Region model.Region
}

// StoreRepository defines data access for store locations using SQL queries
// only. No business logic here — strictly persistence operations. List
// results are ordered by region then city, the order flyers are assembled in.
type StoreRepository interface {
	// Create inserts a new store row and returns the stored record
	// (including values set by database defaults).
	Create(ctx context.Context, store *model.Store) (*model.Store, error)

	// FindByID returns a store by its ID.
	FindByID(ctx context.Context, id string) (*model.Store, error)

	// List returns stores matching the filter, ordered by region then city.
	List(ctx context.Context, f StoreFilter) ([]model.Store, error)

	// Update overwrites the mutable fields of a store and returns the
	// updated record.
	Update(ctx context.Context, store *model.Store) (*model.Store, error)

	// Delete removes a store by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error

	// CountByRegion returns the number of stores per region plus the total.
	CountByRegion(ctx context.Context) (*model.StoreStats, error)
}
