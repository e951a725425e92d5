// Package webapi provides HTTP handlers and API endpoints for the ledger
// service. It is organized into sub-packages:
// - common: shared response envelope and validation helpers
// - account: account management endpoints
// - operation: operation (payment/wage) endpoints
// - ws: the WebSocket notification endpoint
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/primebank/ledger/pkg/app"
	accountweb "github.com/primebank/ledger/webapi/account"
	"github.com/primebank/ledger/webapi/common"
	operationweb "github.com/primebank/ledger/webapi/operation"
	"github.com/primebank/ledger/webapi/ws"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "PrimeBank Ledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		},
	})

	// Rate limiting keyed on the originating client IP, honoring proxy
	// headers when present.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(
				c,
				fiber.StatusTooManyRequests,
				"Too Many Requests",
				errors.New("rate limit exceeded").Error(),
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ledger is running")
	})

	accountweb.Routes(fiberApp, a.AccountService)
	operationweb.Routes(fiberApp, a.OperationService)
	ws.Routes(fiberApp, a.Hub)

	return fiberApp
}
