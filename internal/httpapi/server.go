package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aaronromeo/powerbuilder/internal/catalog"
	"github.com/aaronromeo/powerbuilder/internal/coach"
	"github.com/aaronromeo/powerbuilder/internal/metrics"
)

type Options struct {
	Coach   *coach.Service
	Catalog catalog.Catalog
	Logger  *slog.Logger
	Metrics *metrics.Manager
	// Gatherer backs /metrics; the route is skipped when nil.
	Gatherer prometheus.Gatherer
}

func newApp(logger *slog.Logger, m *metrics.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          120 * time.Second,
	})
	app.Use(requestid.New())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			m.HandlerPanicked()
			logger.Error("handler panic", "path", c.Path(), "panic", e)
		},
	}))
	app.Use(requestLogger(logger, m))
	return app
}

func NewServer(opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	app := newApp(opts.Logger, opts.Metrics)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	if opts.Gatherer != nil {
		app.Get("/metrics", metrics.Handler(opts.Gatherer))
	}
	registerCoach(app, opts.Coach, opts.Catalog, opts.Logger)
	return app
}

// NewHaltedServer answers every request with msg. It is used when the
// service cannot run at all, e.g. without an API key.
func NewHaltedServer(msg string, logger *slog.Logger) *fiber.App {
	if logger == nil {
		logger = slog.Default()
	}
	app := newApp(logger, nil)
	app.Use(func(c *fiber.Ctx) error {
		return render(c, http.StatusServiceUnavailable, "halted", msg)
	})
	return app
}

func requestLogger(logger *slog.Logger, m *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = http.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		took := time.Since(start)
		m.RequestServed(c.Route().Path, c.Method(), status, took)
		logger.Debug("request",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", took,
		)
		return err
	}
}
