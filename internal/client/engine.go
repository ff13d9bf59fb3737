// Package client implements the synchronizing canvas client: a gesture
// state machine over the local shape store, a wire protocol codec, and
// the websocket session that keeps a room's members converged.
package client

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/purvjoshi04/SharedInk/internal/canvas"
	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/shape"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

// EraserRadius is the eraser hit radius in screen pixels; it is divided
// by the camera scale to get the world-space radius.
const EraserRadius = 10

// Tool selects what a pointer gesture produces.
type Tool int

const (
	ToolPointer Tool = iota
	ToolRect
	ToolCircle
	ToolPencil
	ToolArrow
	ToolEraser
)

// State is the gesture phase. Exactly one gesture runs at a time;
// pointer-down events arriving mid-gesture are ignored until release.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateErasing
	StatePanning
)

// sender abstracts the outbound side of the connection so gesture logic
// can be exercised without a socket.
type sender interface {
	send(v any) error
}

// Engine owns the local canvas state for one room and turns pointer
// input into protocol messages. It is not safe for concurrent use; the
// sync client serializes all calls on its event loop.
type Engine struct {
	Store  *canvas.Store
	Camera canvas.Camera

	roomID string
	userID string
	out    sender

	tool  Tool
	state State

	// gesture scratch, valid only while state != StateIdle
	startX, startY float64 // world anchor of the gesture
	lastSX, lastSY float64 // last screen position, for panning
	points         []shape.Point
	dragShape      shape.Shape // current store entry of the dragged shape
	dragOrigin     shape.Shape
	eraserPath     []shape.Point
	eraserRadius   float64
	preErase       []shape.Shape
}

// NewEngine creates an engine bound to a room.
func NewEngine(roomID, userID string, out sender) *Engine {
	return &Engine{
		Store:  canvas.NewStore(),
		Camera: canvas.NewCamera(),
		roomID: roomID,
		userID: userID,
		out:    out,
		tool:   ToolPointer,
	}
}

// SetTool switches the active tool. Switching mid-gesture cancels the
// gesture without emitting anything.
func (e *Engine) SetTool(t Tool) {
	if e.state != StateIdle {
		e.resetGesture()
	}
	e.tool = t
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool { return e.tool }

// State returns the current gesture phase.
func (e *Engine) State() State { return e.state }

// PointerDown begins a gesture at a screen position. It is ignored
// while another gesture is in progress.
func (e *Engine) PointerDown(sx, sy float64) {
	if e.state != StateIdle {
		return
	}

	wx, wy := e.Camera.ScreenToWorld(sx, sy)
	e.startX, e.startY = wx, wy
	e.lastSX, e.lastSY = sx, sy

	switch e.tool {
	case ToolPointer:
		if s, ok := e.Store.HitTest(wx, wy, e.Camera.Scale); ok {
			e.state = StateDragging
			e.dragShape = s
			e.dragOrigin = s.Translate(0, 0) // deep copy
			return
		}
		e.state = StatePanning

	case ToolEraser:
		e.state = StateErasing
		e.eraserRadius = EraserRadius / e.Camera.Scale
		e.eraserPath = []shape.Point{{X: wx, Y: wy}}
		e.preErase = e.Store.Snapshot()

	case ToolPencil:
		e.state = StateDrawing
		e.points = []shape.Point{{X: wx, Y: wy}}

	default:
		e.state = StateDrawing
	}
}

// PointerMove advances the active gesture.
func (e *Engine) PointerMove(sx, sy float64) {
	wx, wy := e.Camera.ScreenToWorld(sx, sy)

	switch e.state {
	case StateDrawing:
		if e.tool == ToolPencil {
			e.points = append(e.points, shape.Point{X: wx, Y: wy})
		}

	case StateDragging:
		// Inbound frames interleave with input, so the dragged shape's
		// position in the store can shift mid-gesture. Re-resolve it
		// every move; if a peer deleted it the gesture is over.
		idx := e.Store.IndexOf(e.dragShape)
		if idx < 0 {
			e.resetGesture()
			break
		}
		moved := e.dragOrigin.Translate(wx-e.startX, wy-e.startY)
		e.Store.ReplaceAt(idx, moved)
		e.dragShape = moved

	case StateErasing:
		e.eraserPath = append(e.eraserPath, shape.Point{X: wx, Y: wy})

	case StatePanning:
		e.Camera.Pan(sx-e.lastSX, sy-e.lastSY)
	}

	e.lastSX, e.lastSY = sx, sy
}

// PointerUp completes the gesture, materializing and broadcasting its
// result.
func (e *Engine) PointerUp(sx, sy float64) {
	wx, wy := e.Camera.ScreenToWorld(sx, sy)

	switch e.state {
	case StateDrawing:
		e.finishDraw(wx, wy)
	case StateDragging:
		e.finishDrag(wx, wy)
	case StateErasing:
		e.finishErase()
	}

	e.resetGesture()
}

// WheelMod describes the modifier held during a wheel event.
type WheelMod int

const (
	WheelModNone  WheelMod = iota
	WheelModShift          // horizontal pan
	WheelModZoom           // ctrl or meta
)

// Wheel routes a wheel event by modifier: ctrl/meta zooms anchored at
// the pointer, shift pans horizontally, a plain wheel pans vertically.
func (e *Engine) Wheel(sx, sy, delta float64, mod WheelMod) {
	switch mod {
	case WheelModZoom:
		e.Camera.ZoomAt(sx, sy, delta)
	case WheelModShift:
		e.Camera.Pan(-delta, 0)
	default:
		e.Camera.Pan(0, -delta)
	}
}

func (e *Engine) finishDraw(wx, wy float64) {
	var s shape.Shape

	switch e.tool {
	case ToolRect:
		if wx == e.startX && wy == e.startY {
			return
		}
		s = shape.NewRect(e.startX, e.startY, wx-e.startX, wy-e.startY)

	case ToolCircle:
		if wx == e.startX && wy == e.startY {
			return
		}
		// radius is half the bounding box diagonal, centered between
		// the gesture endpoints
		dx := wx - e.startX
		dy := wy - e.startY
		s = shape.NewCircle(e.startX+dx/2, e.startY+dy/2, math.Hypot(dx, dy)/2)

	case ToolArrow:
		if wx == e.startX && wy == e.startY {
			return
		}
		s = shape.NewArrow(e.startX, e.startY, wx, wy)

	case ToolPencil:
		if last := e.points[len(e.points)-1]; last.X != wx || last.Y != wy {
			e.points = append(e.points, shape.Point{X: wx, Y: wy})
		}
		// a click without movement has a single sample and is not a
		// stroke
		if len(e.points) < 2 {
			return
		}
		s = shape.NewPencil(e.points)
		e.points = nil

	default:
		return
	}

	e.Store.Append(s)
	e.emitChat(s)
}

func (e *Engine) finishDrag(wx, wy float64) {
	idx := e.Store.IndexOf(e.dragShape)
	if idx < 0 {
		return
	}
	moved := e.dragOrigin.Translate(wx-e.startX, wy-e.startY)
	e.Store.ReplaceAt(idx, moved)

	if moved.Equal(e.dragOrigin) {
		return
	}
	e.emit(&domain.MoveShapeMessage{
		Type:     domain.MsgTypeMoveShape,
		RoomID:   e.roomID,
		OldShape: e.dragOrigin,
		NewShape: moved,
	})
}

// finishErase applies the accumulated path against the pre-gesture
// snapshot, back to front so removals match what the user saw on top.
func (e *Engine) finishErase() {
	for i := len(e.preErase) - 1; i >= 0; i-- {
		s := e.preErase[i]
		if !s.IntersectsPath(e.eraserPath, e.eraserRadius) {
			continue
		}

		e.Store.ApplyRemoteDelete(s)
		e.emit(&domain.DeleteShapeMessage{Type: domain.MsgTypeDeleteShape, RoomID: e.roomID, Shape: s})

		if s.Type != shape.TypePencil {
			continue
		}
		for _, run := range shape.SplitStroke(s.Points, e.eraserPath, e.eraserRadius) {
			frag := shape.NewPencil(run)
			e.Store.Append(frag)
			e.emitChat(frag)
		}
	}
}

// HandleFrame applies one inbound server frame to the local canvas.
func (e *Engine) HandleFrame(raw []byte) {
	l := log.L()

	var base domain.BaseMessage
	if err := json.Unmarshal(raw, &base); err != nil {
		l.Warn().Err(err).Msg("dropping unreadable frame")
		return
	}

	switch base.Type {
	case domain.MsgTypeChat:
		var msg domain.ChatMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.Warn().Err(err).Msg("dropping malformed chat frame")
			return
		}
		s, err := DecodeChatShape(msg.Message)
		if err != nil {
			l.Debug().Err(err).Msg("chat frame carries no shape")
			return
		}
		e.Store.ApplyRemoteAdd(s)

	case domain.MsgTypeDeleteShape:
		var msg domain.DeleteShapeMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.Warn().Err(err).Msg("dropping malformed delete frame")
			return
		}
		e.Store.ApplyRemoteDelete(msg.Shape)

	case domain.MsgTypeMoveShape:
		var msg domain.MoveShapeMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.Warn().Err(err).Msg("dropping malformed move frame")
			return
		}
		e.Store.ApplyRemoteMove(msg.OldShape, msg.NewShape)

	case domain.MsgTypeSendCanvasState:
		var msg domain.SendCanvasStateMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.Warn().Err(err).Msg("dropping malformed state request")
			return
		}
		e.emit(&domain.CanvasStateMessage{
			Type:        domain.MsgTypeCanvasState,
			RoomID:      e.roomID,
			CanvasData:  e.Store.Snapshot(),
			RequesterID: msg.RequesterID,
		})

	case domain.MsgTypeCanvasState:
		var msg domain.CanvasStateMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			l.Warn().Err(err).Msg("dropping malformed canvas state")
			return
		}
		added := e.Store.UpsertRemote(msg.CanvasData)
		l.Debug().Int("added", added).Msg("merged peer canvas state")

	case domain.MsgTypeError:
		var msg domain.ErrorMessage
		if err := json.Unmarshal(raw, &msg); err == nil {
			l.Warn().Str("code", msg.Code).Str("detail", msg.Error).Msg("server error reply")
		}
	}
}

// emitChat wraps a shape in the chat payload encoding used on the wire
// and in history.
func (e *Engine) emitChat(s shape.Shape) {
	payload, err := EncodeChatShape(s)
	if err != nil {
		l := log.L()
		l.Error().Err(err).Msg("encode shape for chat")
		return
	}
	e.emit(&domain.ChatMessage{
		Type:    domain.MsgTypeChat,
		RoomID:  e.roomID,
		Message: payload,
		UserID:  e.userID,
	})
}

func (e *Engine) emit(v any) {
	if err := e.out.send(v); err != nil {
		l := log.L()
		l.Error().Err(err).Msg("send failed")
	}
}

func (e *Engine) resetGesture() {
	e.state = StateIdle
	e.points = nil
	e.dragShape = shape.Shape{}
	e.dragOrigin = shape.Shape{}
	e.eraserPath = nil
	e.preErase = nil
}

// EncodeChatShape encodes a shape as the chat message payload.
func EncodeChatShape(s shape.Shape) (string, error) {
	data, err := json.Marshal(struct {
		Shape shape.Shape `json:"shape"`
	}{Shape: s})
	if err != nil {
		return "", fmt.Errorf("encode shape: %w", err)
	}
	return string(data), nil
}

// DecodeChatShape decodes a chat payload into a shape, accepting both
// the wrapped and the bare form.
func DecodeChatShape(payload string) (shape.Shape, error) {
	var wrapper struct {
		Shape json.RawMessage `json:"shape"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapper); err == nil && len(wrapper.Shape) > 0 {
		var s shape.Shape
		if err := json.Unmarshal(wrapper.Shape, &s); err == nil {
			return s, nil
		}
	}

	var s shape.Shape
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return shape.Shape{}, fmt.Errorf("decode chat shape: %w", err)
	}
	return s, nil
}
