package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/purvjoshi04/SharedInk/internal/config"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

// Client is one WebSocket connection and its session state. UserID is
// set once during the handshake, before the client is registered.
type Client struct {
	ID     string
	UserID string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte

	config config.WebSocketConfig

	sendMu sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection.
func NewClient(id, userID string, h *Hub, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Hub:    h,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		config: cfg,
	}
}

// ReadPump reads inbound frames sequentially and hands each to handler.
// Messages from one sender are therefore processed, and fanned out, in
// the order sent. On any read error the client is unregistered and
// onClose is invoked with the rooms it was still a member of.
func (c *Client) ReadPump(handler func(*Client, []byte), onClose func(*Client, []string)) {
	defer func() {
		rooms := c.Hub.Unregister(c)
		c.Conn.Close()
		if onClose != nil {
			onClose(c, rooms)
		}
	}()

	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Warn().Err(err).Str(log.FieldClientID, c.ID).Msg("websocket read error")
			}
			break
		}
		handler(c, message)
	}
}

// WritePump drains the send queue onto the connection and keeps the
// connection alive with pings. Exits when the queue is closed or a
// write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage marshals and queues a message. The send is non-blocking;
// a full queue drops the frame rather than stalling the caller.
func (c *Client) SendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	c.SendRaw(data)
	return nil
}

// SendRaw queues raw bytes without blocking. Frames sent to a closed
// client are dropped.
func (c *Client) SendRaw(data []byte) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// closeSend closes the send queue exactly once, releasing WritePump and
// discarding anything still queued.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}
