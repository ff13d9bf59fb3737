package domain

import (
	"encoding/json"

	"github.com/purvjoshi04/SharedInk/internal/shape"
)

// WebSocket message types, client -> server.
const (
	MsgTypeJoinRoom           = "join_room"
	MsgTypeLeaveRoom          = "leave_room"
	MsgTypeChat               = "chat"
	MsgTypeDeleteShape        = "delete_shape"
	MsgTypeMoveShape          = "move_shape"
	MsgTypeCanvasUpdate       = "canvas_update"
	MsgTypeRequestCanvasState = "request_canvas_state"
	MsgTypeCanvasState        = "canvas_state"
)

// WebSocket message types, server -> client.
const (
	MsgTypeConnected       = "connected"
	MsgTypeRoomJoined      = "room_joined"
	MsgTypeUserJoined      = "user_joined"
	MsgTypeUserLeft        = "user_left"
	MsgTypeSendCanvasState = "send_canvas_state"
	MsgTypeError           = "error"
)

// Close codes for connection-fatal failures. Room-level failures are
// never a close; they are answered with an in-band error message.
const (
	CloseMissingToken        = 4001
	CloseInvalidToken        = 4002
	CloseServerMisconfigured = 4011
)

// Error codes carried by error messages.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeRoomNotFound  = "ROOM_NOT_FOUND"
	ErrCodeEmptyMessage  = "EMPTY_MESSAGE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// BaseMessage is the envelope all WebSocket messages share.
type BaseMessage struct {
	Type string `json:"type"`
}

// RoomMessage is the envelope of every room-scoped message; the server
// router only needs the type and room to fan a frame out verbatim.
type RoomMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// Client -> server messages.

type JoinRoomMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type LeaveRoomMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// ChatMessage carries a drawing operation or text. Message is opaque to
// the server; clients put an encoded shape in it.
type ChatMessage struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

type DeleteShapeMessage struct {
	Type   string      `json:"type"`
	RoomID string      `json:"roomId"`
	Shape  shape.Shape `json:"shape"`
}

type MoveShapeMessage struct {
	Type     string      `json:"type"`
	RoomID   string      `json:"roomId"`
	OldShape shape.Shape `json:"oldShape"`
	NewShape shape.Shape `json:"newShape"`
}

// CanvasUpdateMessage carries transient incremental state such as
// cursor previews; the payload is forwarded untouched.
type CanvasUpdateMessage struct {
	Type       string          `json:"type"`
	RoomID     string          `json:"roomId"`
	CanvasData json.RawMessage `json:"canvasData"`
}

type RequestCanvasStateMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// CanvasStateMessage is a peer's reply carrying its full local shape
// list, addressed to the original requester.
type CanvasStateMessage struct {
	Type        string        `json:"type"`
	RoomID      string        `json:"roomId"`
	CanvasData  []shape.Shape `json:"canvasData"`
	RequesterID string        `json:"requesterId"`
}

// Server -> client messages.

type ConnectedMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type RoomJoinedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type UserJoinedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type UserLeftMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type SendCanvasStateMessage struct {
	Type        string `json:"type"`
	RoomID      string `json:"roomId"`
	RequesterID string `json:"requesterId"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

func NewErrorMessage(code, message string) *ErrorMessage {
	return &ErrorMessage{
		Type:  MsgTypeError,
		Code:  code,
		Error: message,
	}
}
