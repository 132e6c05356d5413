package mockserver

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"notebooklm-client/internal/config"
	"notebooklm-client/internal/dto"
	"notebooklm-client/internal/pkg/logger"
)

var validate = validator.New()

func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Validation failed on field "+verrs[0].Field())
		}
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed")
	}
	return nil
}

// Server is an in-memory stand-in for the retrieval backend, for
// development and tests without the real service. It speaks the same REST
// surface, including the {"detail": ...} error envelope.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, log logger.ILogger) *Server {
	if log == nil {
		log = logger.NopLogger{}
	}

	app := fiber.New(fiber.Config{
		// Above the 50 MiB upload ceiling so oversize uploads reach the
		// policy check and get the documented message.
		BodyLimit:    64 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Mock.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	app.Use(otelfiber.Middleware())

	registerRoutes(app, log)

	return &Server{app: app, cfg: cfg}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	return s.app.Listen(":" + s.cfg.Mock.Port)
}

func registerRoutes(app *fiber.App, log logger.ILogger) {
	store := NewMemoryStore()
	answers := NewAnswerGenerator(time.Now().UnixNano())

	health := func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "healthy"})
	}
	app.Get("/", health)
	app.Get("/health", health)

	api := app.Group("/api")
	NewNotebookController(store, log).RegisterRoutes(api)
	NewDocumentController(store, log).RegisterRoutes(api)
	NewChatController(store, answers, log).RegisterRoutes(api)
}

// errorHandler renders every error as the backend's envelope.
func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		detail = fiberErr.Message
	}

	return ctx.Status(code).JSON(dto.ErrorResponse{Detail: detail})
}
