package postgres

import (
	"context"
	"database/sql"

	"flyerapi/internal/model"
	"flyerapi/internal/repository"
)

// StorePostgres is a PostgreSQL implementation of repository.StoreRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type StorePostgres struct {
	db *sql.DB
}

// NewStorePostgres creates a new StorePostgres repository.
func NewStorePostgres(db *sql.DB) *StorePostgres {
	return &StorePostgres{db: db}
}

var _ repository.StoreRepository = (*StorePostgres)(nil)

const storeColumns = `id, city, region, address, phone, whatsapp, created_at, updated_at`

func scanStore(row interface{ Scan(...any) error }) (*model.Store, error) {
	var s model.Store
	if err := row.Scan(
		&s.ID,
		&s.City,
		&s.Region,
		&s.Address,
		&s.Phone,
		&s.WhatsApp,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new store row and returns the stored record.
func (r *StorePostgres) Create(ctx context.Context, store *model.Store) (*model.Store, error) {
	const q = `
		INSERT INTO stores (id, city, region, address, phone, whatsapp, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + storeColumns
	row := r.db.QueryRowContext(ctx, q,
		store.ID,
		store.City,
		store.Region,
		store.Address,
		store.Phone,
		store.WhatsApp,
		store.CreatedAt,
		store.UpdatedAt,
	)
	return scanStore(row)
}

// FindByID fetches a single store by its ID.
func (r *StorePostgres) FindByID(ctx context.Context, id string) (*model.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return scanStore(r.db.QueryRowContext(ctx, q, id))
}

// List returns stores ordered by region then city, optionally narrowed to one
// region. The ordering matches the sequence cards appear in on the flyer.
func (r *StorePostgres) List(ctx context.Context, f repository.StoreFilter) ([]model.Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores`
	var args []any
	if f.Region != "" {
		q += ` WHERE region = $1`
		args = append(args, f.Region)
	}
	q += ` ORDER BY region ASC, city ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make([]model.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// Update overwrites the mutable fields of a store and returns the new record.
func (r *StorePostgres) Update(ctx context.Context, store *model.Store) (*model.Store, error) {
	const q = `
		UPDATE stores
		SET city = $2, region = $3, address = $4, phone = $5, whatsapp = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + storeColumns
	row := r.db.QueryRowContext(ctx, q,
		store.ID,
		store.City,
		store.Region,
		store.Address,
		store.Phone,
		store.WhatsApp,
		store.UpdatedAt,
	)
	return scanStore(row)
}

// Delete removes a store by ID. It does not return an error if the row does not exist.
func (r *StorePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM stores WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// CountByRegion aggregates store counts for the dashboard stats endpoint.
func (r *StorePostgres) CountByRegion(ctx context.Context) (*model.StoreStats, error) {
	const q = `SELECT region, COUNT(*) FROM stores GROUP BY region`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &model.StoreStats{ByRegion: make(map[model.Region]int)}
	for rows.Next() {
		var region model.Region
		var count int
		if err := rows.Scan(&region, &count); err != nil {
			return nil, err
		}
		stats.ByRegion[region] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
