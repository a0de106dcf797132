package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"flyerapi/internal/model"
	"flyerapi/internal/render"
	"flyerapi/internal/service"
	serviceMocks "flyerapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListStores(t *testing.T) {
	mockSvc := new(serviceMocks.MockStoreService)
	app := fiber.New()
	app.Get("/stores", ListStores(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").
			Return([]model.Store{{ID: uuid.New().String(), City: "Londrina", Region: model.RegionPR}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/stores", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data  []model.Store `json:"data"`
			Total int           `json:"total"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Data, 1)
		assert.Equal(t, 1, body.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid region", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "XX").
			Return(nil, model.ErrUnknownRegion).Once()

		req := httptest.NewRequest(http.MethodGet, "/stores?region=XX", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_REGION", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").
			Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodGet, "/stores", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestCreateStore(t *testing.T) {
	mockSvc := new(serviceMocks.MockStoreService)
	app := fiber.New()
	app.Post("/stores", CreateStore(mockSvc))

	postJSON := func(payload any) *http.Response {
		b, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/stores", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		fields := model.StoreFields{
			City: "Londrina", Region: "PR", Address: "Av. Tiradentes, 1500", WhatsApp: "(43) 99999-0000",
		}
		mockSvc.On("Create", mock.Anything, fields).
			Return(&model.Store{ID: "gen-id", City: "Londrina"}, nil).Once()

		resp := postJSON(fields)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var store model.Store
		json.NewDecoder(resp.Body).Decode(&store)
		assert.Equal(t, "gen-id", store.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrCityRequired).Once()

		resp := postJSON(model.StoreFields{Region: "PR"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "CITY_REQUIRED", body.Error.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/stores", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetStore(t *testing.T) {
	mockSvc := new(serviceMocks.MockStoreService)
	app := fiber.New()
	app.Get("/stores/:id", GetStore(mockSvc))

	t.Run("found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.Store{ID: id, City: "Maringá"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/stores/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(nil, service.ErrStoreNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/stores/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stores/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateStore(t *testing.T) {
	mockSvc := new(serviceMocks.MockStoreService)
	app := fiber.New()
	app.Put("/stores/:id", UpdateStore(mockSvc))

	id := uuid.New().String()
	fields := model.StoreFields{
		City: "Cambé", Region: "PR", Address: "Rua Holanda, 70", WhatsApp: "(43) 98888-0000",
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, id, fields).
			Return(&model.Store{ID: id, City: "Cambé"}, nil).Once()

		b, _ := json.Marshal(fields)
		req := httptest.NewRequest(http.MethodPut, "/stores/"+id, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, id, fields).
			Return(nil, service.ErrStoreNotFound).Once()

		b, _ := json.Marshal(fields)
		req := httptest.NewRequest(http.MethodPut, "/stores/"+id, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteStore(t *testing.T) {
	mockSvc := new(serviceMocks.MockStoreService)
	app := fiber.New()
	app.Delete("/stores/:id", DeleteStore(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/stores/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/stores/123", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStoreStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockStoreService)
	app := fiber.New()
	app.Get("/stores/stats", StoreStats(mockSvc))

	mockSvc.On("Stats", mock.Anything).Return(&model.StoreStats{
		Total:    43,
		ByRegion: map[model.Region]int{model.RegionPR: 28, model.RegionSP: 15},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/stores/stats", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats model.StoreStats
	json.NewDecoder(resp.Body).Decode(&stats)
	assert.Equal(t, 43, stats.Total)
	assert.Equal(t, 28, stats.ByRegion[model.RegionPR])
}

func TestExportFlyer(t *testing.T) {
	mockSvc := new(serviceMocks.MockFlyerService)
	app := fiber.New()
	app.Post("/flyers/:region/export", ExportFlyer(mockSvc))

	post := func(region string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/flyers/"+region+"/export", nil)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "PR").Return(&service.ExportResult{
			Export:      &model.Export{ID: "exp-1", Region: model.RegionPR, Filename: "panfleto-rede-unica-pr.pdf"},
			DownloadURL: "https://minio.local/signed",
		}, nil).Once()

		resp := post("PR")

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var res service.ExportResult
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "exp-1", res.Export.ID)
		assert.Equal(t, "https://minio.local/signed", res.DownloadURL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown region", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "XX").
			Return(nil, model.ErrUnknownRegion).Once()

		resp := post("XX")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_REGION", body.Error.Code)
	})

	t.Run("no stores", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "SP").
			Return(nil, service.ErrNoStores).Once()

		resp := post("SP")

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("concurrent export rejected", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "PR").
			Return(nil, render.ErrExportInFlight).Once()

		resp := post("PR")

		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "EXPORT_IN_FLIGHT", body.Error.Code)
	})

	t.Run("pipeline failure", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "PR").
			Return(nil, render.ErrCapture).Once()

		resp := post("PR")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestDownloadFlyer(t *testing.T) {
	mockSvc := new(serviceMocks.MockFlyerService)
	app := fiber.New()
	app.Get("/flyers/:region/download", DownloadFlyer(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, "PR").Return(&service.ExportResult{
			Export:      &model.Export{ID: "exp-1"},
			DownloadURL: "https://minio.local/e1",
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/flyers/PR/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("nothing exported yet", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, "SP").
			Return(nil, service.ErrExportNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/flyers/SP/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListExports(t *testing.T) {
	mockSvc := new(serviceMocks.MockFlyerService)
	app := fiber.New()
	app.Get("/exports", ListExports(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("ListExports", mock.Anything, 10, 0).Return(&service.ExportListResult{
			Items: []model.Export{{ID: "e1"}},
			Total: 1,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/exports", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res service.ExportListResult
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, 1, res.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/exports?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})
}
