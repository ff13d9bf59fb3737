package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/history"
	"github.com/purvjoshi04/SharedInk/internal/shape"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

const (
	// reconnectDelay is the fixed backoff between dial attempts.
	reconnectDelay = 3 * time.Second

	// stateRequestDelay gives the room join a moment to settle before
	// asking a peer for its canvas, so the peer set is current.
	stateRequestDelay = 500 * time.Millisecond
)

// Options configures a sync client session.
type Options struct {
	ServerURL  string // ws:// or wss:// endpoint
	APIBaseURL string // history REST base, optional
	Token      string
	RoomID     string
	UserID     string
}

// SyncClient connects to the broadcast server, seeds its engine from
// persisted history, joins a room, and keeps the engine converged with
// the room's live traffic. All engine access is serialized on the run
// loop; input arrives through the Input* methods.
type SyncClient struct {
	opts    Options
	engine  *Engine
	history *history.Client

	mu   sync.Mutex
	conn *websocket.Conn

	input chan func(*Engine)
	done  chan struct{}
}

// NewSyncClient builds a client for one room.
func NewSyncClient(opts Options) *SyncClient {
	c := &SyncClient{
		opts:  opts,
		input: make(chan func(*Engine), 64),
		done:  make(chan struct{}),
	}
	c.engine = NewEngine(opts.RoomID, opts.UserID, c)
	if opts.APIBaseURL != "" {
		c.history = history.NewClient(opts.APIBaseURL, opts.Token)
	}
	return c
}

// send implements the engine's sender over the live connection. The
// lock is held across the write; the connection allows only one writer
// at a time.
func (c *SyncClient) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(v)
}

// InputPointerDown feeds a pointer press into the engine loop.
func (c *SyncClient) InputPointerDown(sx, sy float64) {
	c.enqueue(func(e *Engine) { e.PointerDown(sx, sy) })
}

// InputPointerMove feeds a pointer move into the engine loop.
func (c *SyncClient) InputPointerMove(sx, sy float64) {
	c.enqueue(func(e *Engine) { e.PointerMove(sx, sy) })
}

// InputPointerUp feeds a pointer release into the engine loop.
func (c *SyncClient) InputPointerUp(sx, sy float64) {
	c.enqueue(func(e *Engine) { e.PointerUp(sx, sy) })
}

// InputWheel feeds a wheel event into the engine loop.
func (c *SyncClient) InputWheel(sx, sy, delta float64, mod WheelMod) {
	c.enqueue(func(e *Engine) { e.Wheel(sx, sy, delta, mod) })
}

// InputSetTool switches the active tool.
func (c *SyncClient) InputSetTool(t Tool) {
	c.enqueue(func(e *Engine) { e.SetTool(t) })
}

// Leave announces departure from the room. The connection stays open.
// The write runs on the engine loop with every other outbound frame.
func (c *SyncClient) Leave() error {
	errc := make(chan error, 1)
	c.enqueue(func(e *Engine) {
		errc <- c.send(&domain.LeaveRoomMessage{Type: domain.MsgTypeLeaveRoom, RoomID: c.opts.RoomID})
	})
	select {
	case err := <-errc:
		return err
	case <-c.done:
		return fmt.Errorf("client stopped")
	}
}

// Shapes returns a snapshot of the current canvas, for rendering.
func (c *SyncClient) Shapes() []shape.Shape {
	result := make(chan []shape.Shape, 1)
	c.enqueue(func(e *Engine) { result <- e.Store.Snapshot() })
	select {
	case shapes := <-result:
		return shapes
	case <-c.done:
		return nil
	}
}

func (c *SyncClient) enqueue(fn func(*Engine)) {
	select {
	case c.input <- fn:
	case <-c.done:
	}
}

// Run connects and processes traffic until the context is canceled,
// redialing with a fixed backoff after connection loss.
func (c *SyncClient) Run(ctx context.Context) error {
	defer close(c.done)

	l := log.Ctx(ctx)

	for {
		if err := c.session(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.Warn().Err(err).Dur("retry_in", reconnectDelay).Msg("connection lost, reconnecting")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// session runs one connection lifetime: dial, seed from history, join,
// request peer state, then pump frames and input until failure.
func (c *SyncClient) session(ctx context.Context) error {
	l := log.Ctx(ctx)

	endpoint, err := c.dialURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
	}()

	if c.history != nil {
		shapes, err := c.history.FetchShapes(ctx, c.opts.RoomID)
		if err != nil {
			l.Warn().Err(err).Msg("history fetch failed, starting empty")
		} else {
			c.engine.Store.UpsertRemote(shapes)
			l.Info().Int("shapes", len(shapes)).Msg("seeded canvas from history")
		}
	}

	if err := c.send(&domain.JoinRoomMessage{Type: domain.MsgTypeJoinRoom, RoomID: c.opts.RoomID}); err != nil {
		return fmt.Errorf("join room: %w", err)
	}

	frames := make(chan []byte, 64)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	stateReq := time.NewTimer(stateRequestDelay)
	defer stateReq.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return fmt.Errorf("read: %w", err)
		case <-stateReq.C:
			if err := c.send(&domain.RequestCanvasStateMessage{
				Type:   domain.MsgTypeRequestCanvasState,
				RoomID: c.opts.RoomID,
			}); err != nil {
				return fmt.Errorf("request canvas state: %w", err)
			}
		case data := <-frames:
			c.engine.HandleFrame(data)
		case fn := <-c.input:
			fn(c.engine)
		}
	}
}

func (c *SyncClient) dialURL() (string, error) {
	u, err := url.Parse(c.opts.ServerURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	q := u.Query()
	q.Set("token", c.opts.Token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
