package postgres

import (
	"context"
	"database/sql"

	"flyerapi/internal/model"
	"flyerapi/internal/repository"
)

// ExportPostgres is a PostgreSQL implementation of repository.ExportRepository.
type ExportPostgres struct {
	db *sql.DB
}

// NewExportPostgres creates a new ExportPostgres repository.
func NewExportPostgres(db *sql.DB) *ExportPostgres {
	return &ExportPostgres{db: db}
}

var _ repository.ExportRepository = (*ExportPostgres)(nil)

// Create inserts a new export row and returns the stored record.
func (r *ExportPostgres) Create(ctx context.Context, exp *model.Export) (*model.Export, error) {
	const q = `
		INSERT INTO exports (id, region, filename, storage_path, size, store_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, region, filename, storage_path, size, store_count, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		exp.ID,
		exp.Region,
		exp.Filename,
		exp.StoragePath,
		exp.Size,
		exp.StoreCount,
		exp.CreatedAt,
	)
	var out model.Export
	if err := row.Scan(
		&out.ID,
		&out.Region,
		&out.Filename,
		&out.StoragePath,
		&out.Size,
		&out.StoreCount,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns exports using LIMIT/OFFSET pagination, newest first, and a total count.
func (r *ExportPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Export], error) {
	const qCount = `SELECT COUNT(*) FROM exports`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, region, filename, storage_path, size, store_count, created_at
		FROM exports
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Export, 0)
	for rows.Next() {
		var e model.Export
		if err := rows.Scan(
			&e.ID,
			&e.Region,
			&e.Filename,
			&e.StoragePath,
			&e.Size,
			&e.StoreCount,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Export]{
		Items: items,
		Total: total,
	}, nil
}
