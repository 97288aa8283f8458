package mcp

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ServeHTTP runs the fiber sidecar exposing health and summary endpoints
// alongside the stdio MCP server. It blocks until the listener fails.
func (s *Server) ServeHTTP(addr string) error {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"title":  s.summary.Title,
			"tools":  len(s.operations),
		})
	})

	app.Get("/summary", func(c *fiber.Ctx) error {
		return c.JSON(s.summary)
	})

	s.logger.Info("Serving sidecar HTTP endpoints", zap.String("addr", addr))
	return app.Listen(addr)
}
