package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"flyerapi/internal/model"
	"flyerapi/internal/render"
	"flyerapi/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListStores returns all stores, optionally filtered by ?region=.
//
// @Summary List stores
// @Produce json
// @Param region query string false "Region code (PR or SP)"
// @Success 200 {array} model.Store
// @Router /stores [get]
func ListStores(svc service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stores, err := svc.List(c.UserContext(), c.Query("region"))
		if err != nil {
			if errors.Is(err, model.ErrUnknownRegion) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_REGION", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": stores, "total": len(stores)})
	}
}

// CreateStore adds a new store location.
//
// @Summary Create store
// @Accept json
// @Produce json
// @Param store body model.StoreFields true "Store fields"
// @Success 201 {object} model.Store
// @Router /stores [post]
func CreateStore(svc service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields model.StoreFields
		if err := c.BodyParser(&fields); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		store, err := svc.Create(c.UserContext(), fields)
		if err != nil {
			if code, msg, ok := validationError(err); ok {
				return writeError(c, fiber.StatusBadRequest, code, msg)
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(store)
	}
}

// GetStore returns a single store by ID.
func GetStore(svc service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		store, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrStoreNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "store not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(store)
	}
}

// UpdateStore overwrites the mutable fields of a store.
func UpdateStore(svc service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var fields model.StoreFields
		if err := c.BodyParser(&fields); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		store, err := svc.Update(c.UserContext(), id, fields)
		if err != nil {
			if errors.Is(err, service.ErrStoreNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "store not found")
			}
			if code, msg, ok := validationError(err); ok {
				return writeError(c, fiber.StatusBadRequest, code, msg)
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(store)
	}
}

// DeleteStore removes a store by ID.
func DeleteStore(svc service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// StoreStats returns per-region counts and the network total.
func StoreStats(svc service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(stats)
	}
}

// ExportFlyer generates the flyer PDF for a region and archives it.
//
// @Summary Export flyer
// @Produce json
// @Param region path string true "Region code (PR or SP)"
// @Success 201 {object} service.ExportResult
// @Router /flyers/{region}/export [post]
func ExportFlyer(svc service.FlyerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Export(c.UserContext(), c.Params("region"))
		if err != nil {
			switch {
			case errors.Is(err, model.ErrUnknownRegion):
				return writeError(c, fiber.StatusBadRequest, "INVALID_REGION", err.Error())
			case errors.Is(err, service.ErrNoStores):
				return writeError(c, fiber.StatusUnprocessableEntity, "NO_STORES", "no stores in region")
			case errors.Is(err, render.ErrExportInFlight):
				return writeError(c, fiber.StatusConflict, "EXPORT_IN_FLIGHT", "an export for this region is already running")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// DownloadFlyer returns a presigned URL for the latest archived flyer.
func DownloadFlyer(svc service.FlyerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Download(c.UserContext(), c.Params("region"))
		if err != nil {
			switch {
			case errors.Is(err, model.ErrUnknownRegion):
				return writeError(c, fiber.StatusBadRequest, "INVALID_REGION", err.Error())
			case errors.Is(err, service.ErrExportNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no flyer exported for this region")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// ListExports returns archived exports with limit & offset.
func ListExports(svc service.FlyerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		res, err := svc.ListExports(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// validationError maps service validation failures to error codes.
func validationError(err error) (code, message string, ok bool) {
	switch {
	case errors.Is(err, service.ErrCityRequired):
		return "CITY_REQUIRED", "city is required", true
	case errors.Is(err, service.ErrAddressRequired):
		return "ADDRESS_REQUIRED", "address is required", true
	case errors.Is(err, service.ErrWhatsAppRequired):
		return "WHATSAPP_REQUIRED", "whatsapp is required", true
	case errors.Is(err, model.ErrUnknownRegion):
		return "INVALID_REGION", err.Error(), true
	}
	return "", "", false
}
