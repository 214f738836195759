// Package backend serves the claim HTTP API.
package backend

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ellavondegurechaff/cakeclaim/backend/handlers"
	"github.com/ellavondegurechaff/cakeclaim/backend/middleware"
)

type Options struct {
	AllowOrigins string
	StaticDir    string
	// RateLimiter guards the POST routes when set.
	RateLimiter *middleware.RateLimiter
	// ProxyHeader is read for the client IP only on requests whose peer is
	// listed in TrustedProxies.
	ProxyHeader    string
	TrustedProxies []string
}

func NewApp(webApp *handlers.WebApp, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:                 "CakeClaim API",
		ServerHeader:            "CakeClaim",
		ErrorHandler:            middleware.CustomErrorHandler,
		ProxyHeader:             opts.ProxyHeader,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          opts.TrustedProxies,
		EnableIPValidation:      true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	allowOrigins := opts.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp, opts)
	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp, opts Options) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/nft-template", handlers.ListTemplates(webApp))
	app.Get("/nft", handlers.ListTokens(webApp))
	app.Get("/nft/:tokenId/owner", handlers.TokenOwner(webApp))

	limited := func(h fiber.Handler) []fiber.Handler {
		if opts.RateLimiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{middleware.RateLimit(opts.RateLimiter), h}
	}
	app.Post("/claim", limited(handlers.Claim(webApp))...)
	app.Post("/verify-transaction", limited(handlers.VerifyTransaction(webApp))...)

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
	}

	app.Use(handlers.NotFound)
}
