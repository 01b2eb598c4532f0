package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	engine := c.Locals("engine").(*othello.Engine)        //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	h := ws.NewHandler(c, analysis.NewAnalyzer(engine, cfg.Search, services))
	err := h.Handle()
	if err != nil {
		slog.Debug("ws connection closed", "error", err)
	}
}

func upgradeRequired(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", upgradeRequired, websocket.New(handleWs))
}
