package api

import (
	"time"

	"docuflow/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RouterConfig carries the handlers plus the few server knobs the Fiber app
// needs at construction time.
type RouterConfig struct {
	Templates       *handlers.TemplateHandler
	Documents       *handlers.DocumentHandler
	Extractions     *handlers.ExtractionHandler
	FeatureRequests *handlers.FeatureRequestHandler
	Health          *handlers.HealthHandler

	// BodyLimit must exceed the upload size cap so oversized files reach
	// the service layer and fail with a 400 instead of a transport error.
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *zap.Logger
}

func SetupRouter(cfg RouterConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			} else {
				cfg.Logger.Error("Unhandled error", zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"message": message,
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	api := app.Group("/api")

	api.Get("/health", cfg.Health.Check)

	templates := api.Group("/templates")
	templates.Get("", cfg.Templates.List)
	templates.Get("/:id", cfg.Templates.Get)
	templates.Post("", cfg.Templates.Create)
	templates.Put("/:id", cfg.Templates.Update)
	templates.Delete("/:id", cfg.Templates.Delete)

	documents := api.Group("/documents")
	documents.Get("", cfg.Documents.List)
	documents.Post("/upload", cfg.Documents.Upload)
	documents.Get("/:id", cfg.Documents.Get)
	documents.Delete("/:id", cfg.Documents.Delete)
	documents.Get("/:id/file", cfg.Documents.ServeFile)
	documents.Post("/:id/process", cfg.Documents.Process)
	documents.Get("/:id/data", cfg.Documents.GetData)
	documents.Get("/:id/export/csv", cfg.Documents.ExportCSV)
	documents.Get("/:id/export/excel", cfg.Documents.ExportExcel)

	extractions := api.Group("/extracted-data")
	extractions.Put("/:id", cfg.Extractions.Update)
	extractions.Post("/:id/verify", cfg.Extractions.Verify)

	features := api.Group("/feature-requests")
	features.Get("", cfg.FeatureRequests.List)
	features.Post("", cfg.FeatureRequests.Create)

	return app
}
