package repository

import (
	"context"

	"flyerapi/internal/model"
)

// ExportRepository persists metadata for archived flyer PDFs.
type ExportRepository interface {
	// Create inserts a new export record.
	Create(ctx context.Context, exp *model.Export) (*model.Export, error)

	// List returns a paginated list of exports, newest first, with the
	// total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Export], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
