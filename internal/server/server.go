package server

import (
	"os"

	"ai-docstruct-be/internal/bootstrap"
	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/controller"
	"ai-docstruct-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const serverModule = "SERVER"

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.App.BodyLimitMB * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		// credentials cannot be combined with a wildcard origin
		AllowCredentials: cfg.App.CorsAllowedOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(controller.StatusForError))

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info(serverModule, "Server is running", map[string]interface{}{
		"address": "http://localhost:" + s.cfg.App.Port,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	app.Get("/", landingPage(cfg.App.LandingPage))

	api := app.Group("/api")
	api.Get("/health", health(c))
	c.DocumentController.RegisterRoutes(api)
}

func landingPage(path string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if _, err := os.Stat(path); err != nil {
			return ctx.JSON(serverutils.SuccessResponse[any]("AI document structuring backend is running", nil))
		}
		return ctx.SendFile(path)
	}
}

func health(c *bootstrap.Container) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{
			"events": c.ConsumerService.Stats(),
		}))
	}
}
