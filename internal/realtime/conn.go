package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is a live realtime connection. Implementations must make Send safe for
// concurrent use and must return an error once the transport is gone.
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// wsConn wraps a gorilla websocket connection. The websocket protocol allows
// a single concurrent writer, so Send serializes writes with a mutex.
type wsConn struct {
	id string

	mu sync.Mutex
	ws *websocket.Conn
}

// NewConn wraps an upgraded websocket connection with a generated id.
func NewConn(ws *websocket.Conn) Conn {
	return &wsConn{id: uuid.NewString(), ws: ws}
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}
