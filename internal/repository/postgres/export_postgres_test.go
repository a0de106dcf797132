package postgres

import (
	"context"
	"testing"
	"time"

	"flyerapi/internal/model"
	"flyerapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportCols = []string{"id", "region", "filename", "storage_path", "size", "store_count", "created_at"}

func TestExportPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExportPostgres(db)

	now := time.Now().UTC()
	exp := &model.Export{
		ID:          "export-uuid",
		Region:      model.RegionPR,
		Filename:    "panfleto-rede-unica-pr.pdf",
		StoragePath: "flyers/pr/export-uuid.pdf",
		Size:        52341,
		StoreCount:  28,
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(exportCols).
		AddRow(exp.ID, string(exp.Region), exp.Filename, exp.StoragePath, exp.Size, exp.StoreCount, now)

	mock.ExpectQuery("INSERT INTO exports").
		WithArgs(exp.ID, exp.Region, exp.Filename, exp.StoragePath, exp.Size, exp.StoreCount, now).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), exp)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, exp.StoragePath, result.StoragePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExportPostgres(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now().UTC()
	rows := sqlmock.NewRows(exportCols).
		AddRow("e2", "SP", "panfleto-rede-unica-sp.pdf", "flyers/sp/e2.pdf", 40000, 15, now).
		AddRow("e1", "PR", "panfleto-rede-unica-pr.pdf", "flyers/pr/e1.pdf", 52341, 28, now.Add(-time.Hour))

	mock.ExpectQuery("FROM exports").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, model.RegionSP, res.Items[0].Region)
}
