package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"flyerapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, storeSvc service.StoreService, flyerSvc service.FlyerService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/stores", ListStores(storeSvc))
	app.Post("/stores", CreateStore(storeSvc))
	app.Get("/stores/stats", StoreStats(storeSvc))
	app.Get("/stores/:id", GetStore(storeSvc))
	app.Put("/stores/:id", UpdateStore(storeSvc))
	app.Delete("/stores/:id", DeleteStore(storeSvc))

	app.Post("/flyers/:region/export", ExportFlyer(flyerSvc))
	app.Get("/flyers/:region/download", DownloadFlyer(flyerSvc))
	app.Get("/exports", ListExports(flyerSvc))
}
