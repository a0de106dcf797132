package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"flyerapi/docs"
	"flyerapi/internal/config"
	"flyerapi/internal/database"
	"flyerapi/internal/database/migration"
	handlers "flyerapi/internal/http/handler"
	"flyerapi/internal/http/middleware"
	"flyerapi/internal/otel"
	"flyerapi/internal/render"
	"flyerapi/internal/repository/postgres"
	"flyerapi/internal/service"
	"flyerapi/internal/storage"
)

// @title Flyer API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC

	// Initialize tracing; degrades to a noop provider when the exporter is unreachable
	shutdownTracing, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Create schema and seed the store network on first boot
	if err := migration.EnsureMigrated(context.Background(), db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Build the render pipeline
	rasterOpts := render.RasterizerOptions{Scale: cfg.Flyer.ExportScale}
	if cfg.Flyer.FontPath != "" {
		if rasterOpts.FontRegular, err = os.ReadFile(cfg.Flyer.FontPath); err != nil {
			log.Fatalf("failed to read font: %v", err)
		}
	}
	if cfg.Flyer.FontBoldPath != "" {
		if rasterOpts.FontBold, err = os.ReadFile(cfg.Flyer.FontBoldPath); err != nil {
			log.Fatalf("failed to read bold font: %v", err)
		}
	}
	rasterizer, err := render.NewCanvasRasterizer(rasterOpts)
	if err != nil {
		log.Fatalf("failed to initialize rasterizer: %v", err)
	}

	reg := prometheus.NewRegistry()
	exportMetrics, err := render.NewMetricsNotifier(reg)
	if err != nil {
		log.Fatalf("failed to register export metrics: %v", err)
	}
	notifier := render.MultiNotifier{
		exportMetrics,
		render.NewLogNotifier(os.Stdout),
	}
	exporter := render.NewExporter(rasterizer, render.NewPDFPackager("Rede Única de Baterias", "flyerapi"), notifier)

	// Initialize repositories and services
	storeRepo := postgres.NewStorePostgres(db)
	exportRepo := postgres.NewExportPostgres(db)
	storeSvc := service.NewStoreService(storeRepo)
	flyerSvc := service.NewFlyerService(storeRepo, exportRepo, objStore, exporter, service.FlyerServiceOptions{
		KeyPrefix:      cfg.Flyer.StoragePrefix,
		DownloadExpiry: time.Duration(cfg.Flyer.DownloadExpirySec) * time.Second,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}
	app.Use(promMW.Handler())

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, storeSvc, flyerSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
