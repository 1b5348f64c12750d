package realtime

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventhub/event-server/internal/api/metrics"
)

// Handler upgrades HTTP requests to websocket connections and ties connection
// lifetime to registry membership.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(registry *Registry, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the UI origin; cross-origin access
			// is controlled by the bearer-token HTTP surface, not the socket.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve handles GET /ws. The connection is registered for the exact span of
// the transport: added after the upgrade, removed when the read loop observes
// close or error. The baseline channel consumes no inbound messages and binds
// no identity; the read loop exists only to detect disconnects.
func (h *Handler) Serve(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
	}

	conn := NewConn(ws)
	h.registry.Add(conn)
	metrics.WSConnections.Set(float64(h.registry.Len()))
	h.log.Debug().Str("connection_id", conn.ID()).Msg("client connected")

	welcome, _ := json.Marshal(welcomeEnvelope{
		Type:    TypeWelcome,
		Message: "Connected to events server",
	})
	if err := conn.Send(welcome); err != nil {
		h.drop(conn)
		return nil
	}

	for {
		if _, _, err := ws.NextReader(); err != nil {
			break
		}
	}

	h.drop(conn)
	return nil
}

func (h *Handler) drop(conn Conn) {
	h.registry.Remove(conn.ID())
	_ = conn.Close()
	metrics.WSConnections.Set(float64(h.registry.Len()))
	h.log.Debug().Str("connection_id", conn.ID()).Msg("client disconnected")
}
