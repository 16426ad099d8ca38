package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// AppName is reported by /health and the Fiber app.
const AppName = "the-zeitgeist-pet"

// NewApp builds the Fiber app with middleware, the health endpoint and
// every API route.
func NewApp(service *zeitgeist.Service, metrics http.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A cold entity read waits for the slowest source.
		WriteTimeout: 30 * time.Second,
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": AppName,
		})
	})

	RegisterRoutes(app, service, metrics)
	return app
}

// errorHandler renders every error as {"error": true, "message": ...}.
// Only *fiber.Error messages reach the client; anything else is logged and
// reported as unavailable.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := msgUnavailable

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logging.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
