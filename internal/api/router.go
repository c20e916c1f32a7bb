package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/qolzam/telar/apps/reply-engine/internal/middleware/requestid"
)

// RouterConfig holds the server settings the router needs.
type RouterConfig struct {
	AppName      string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// DisableAccessLog turns off the request logger, mainly for tests.
	DisableAccessLog bool
}

func Router(handler *Handler, cfg RouterConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		BodyLimit:             cfg.BodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	if !cfg.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Content-Type,Authorization," + requestid.HeaderRequestID,
		ExposeHeaders: requestid.HeaderRequestID,
	}))

	app.Get("/health", handler.Health)

	v1 := app.Group("/api")
	v1.Post("/generate-reply", handler.GenerateReply)

	return app
}
