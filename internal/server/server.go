// Package server assembles the Fiber application: middleware, session
// handling, views and routes.
package server

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/config"
	"alfredoptarigan/story-bias/internal/handlers"
	"alfredoptarigan/story-bias/internal/services"
	"alfredoptarigan/story-bias/internal/views"
)

type Options struct {
	Session config.SessionConfig

	// Storage backs the session store. Nil keeps sessions in memory.
	Storage fiber.Storage

	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
}

func New(reportService services.ReportService, opts Options, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Story Bias Report",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Views:        views.NewEngine(),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
			Output:     opts.AccessLog,
		}))
	}

	cookieName := opts.Session.CookieName
	if cookieName == "" {
		cookieName = "session_id"
	}

	store := session.New(session.Config{
		Storage:        opts.Storage,
		Expiration:     opts.Session.Expiration,
		KeyLookup:      "cookie:" + cookieName,
		CookieHTTPOnly: true,
		CookieSecure:   opts.Session.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   uuid.NewString,
	})
	sessions := handlers.NewSessionResolver(store)

	homeHandler := handlers.NewHomeHandler(reportService, sessions, log)
	analyzeHandler := handlers.NewAnalyzeHandler(reportService, sessions, log)

	app.Get("/", homeHandler.HandleHome)
	app.Get("/health", handlers.Health)
	app.Get("/analyze", analyzeHandler.RedirectHome)
	app.Post("/analyze", analyzeHandler.HandleAnalyze)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
